package config

const (
	defaultWelcomeTitle = "✅ Guild Verification"

	defaultWelcomeMessage = `# **Welcome to the Discord Server!**

To gain access to all the member channels, please complete the verification below.

Click the button below to start your verification process.`

	defaultCompleteMessage = "🎉 **Verification Complete!** An officer will soon grant you membership access to the server."
)

// Custom server emoji need their id, e.g. "<:wowdruid:123456789>"; the
// defaults use unicode so the buttons render on any guild.
var defaultClasses = []RegistryEntry{
	{Name: "Druid", RoleID: "1234230977925222485", Icon: "🌿"},
	{Name: "Hunter", RoleID: "1234230977925222484", Icon: "🏹"},
	{Name: "Mage", RoleID: "1234230977925222483", Icon: "🔮"},
	{Name: "Priest", RoleID: "1234230977899794489", Icon: "✨"},
	{Name: "Rogue", RoleID: "1234230977899794492", Icon: "🗡️"},
	{Name: "Shaman", RoleID: "1234230977899794491", Icon: "⚡"},
	{Name: "Warlock", RoleID: "1234230977899794488", Icon: "💀"},
	{Name: "Warrior", RoleID: "1234230977899794490", Icon: "⚔️"},
}

var defaultRoles = []RegistryEntry{
	{Name: "DPS", RoleID: "1234230977899794483", Icon: "⚔️"},
	{Name: "Heal", RoleID: "1234230977866498097", Icon: "💚"},
	{Name: "Tank", RoleID: "1234230977866498098", Icon: "🛡️"},
}

// applyDefaults fills values that cannot carry an env-default tag
func (c *Config) applyDefaults() {
	if c.Messages.WelcomeTitle == "" {
		c.Messages.WelcomeTitle = defaultWelcomeTitle
	}
	if c.Messages.Welcome == "" {
		c.Messages.Welcome = defaultWelcomeMessage
	}
	if c.Messages.Complete == "" {
		c.Messages.Complete = defaultCompleteMessage
	}
	if len(c.Classes) == 0 {
		c.Classes = append([]RegistryEntry(nil), defaultClasses...)
	}
	if len(c.Roles) == 0 {
		c.Roles = append([]RegistryEntry(nil), defaultRoles...)
	}
}
