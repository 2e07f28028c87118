package core

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// TestInteractionContext creates an InteractionContext for testing
type TestInteractionContext struct {
	*InteractionContext
}

// NewTestInteractionContext creates a test interaction context for a
// guild member without permissions.
func NewTestInteractionContext() *TestInteractionContext {
	ctx := &InteractionContext{
		Context:   context.Background(),
		UserID:    "test-user-123",
		GuildID:   "test-guild-123",
		ChannelID: "test-channel-123",
		params:    make(map[string]interface{}),
	}
	ctx.Member = &discordgo.Member{User: &discordgo.User{ID: ctx.UserID}}

	return &TestInteractionContext{InteractionContext: ctx}
}

// WithParam adds a parameter for testing
func (t *TestInteractionContext) WithParam(key string, value interface{}) *TestInteractionContext {
	t.params[key] = value
	return t
}

// WithUserID sets the user ID
func (t *TestInteractionContext) WithUserID(userID string) *TestInteractionContext {
	t.UserID = userID
	t.Member.User.ID = userID
	return t
}

// WithGuildID sets the guild ID
func (t *TestInteractionContext) WithGuildID(guildID string) *TestInteractionContext {
	t.GuildID = guildID
	return t
}

// WithChannelID sets the channel the interaction came from
func (t *TestInteractionContext) WithChannelID(channelID string) *TestInteractionContext {
	t.ChannelID = channelID
	return t
}

// WithRoles sets the roles for the member
func (t *TestInteractionContext) WithRoles(roles []string) *TestInteractionContext {
	t.Member.Roles = roles
	return t
}

// WithPermissions sets the member's resolved channel permissions
func (t *TestInteractionContext) WithPermissions(perms int64) *TestInteractionContext {
	t.Member.Permissions = perms
	return t
}

// AsCommand simulates a command interaction
func (t *TestInteractionContext) AsCommand(name string, subcommand ...string) *TestInteractionContext {
	t.setInteraction(discordgo.InteractionApplicationCommand, discordgo.ApplicationCommandInteractionData{
		Name: name,
	})

	if len(subcommand) > 0 {
		t.params["subcommand"] = subcommand[0]
	}

	return t
}

// AsComponent simulates a component interaction
func (t *TestInteractionContext) AsComponent(customID string) *TestInteractionContext {
	t.setInteraction(discordgo.InteractionMessageComponent, discordgo.MessageComponentInteractionData{
		CustomID: customID,
	})
	return t
}

// AsModal simulates a modal submission with the given text input values
func (t *TestInteractionContext) AsModal(customID string, values map[string]string) *TestInteractionContext {
	components := make([]discordgo.MessageComponent, 0, len(values))
	for id, value := range values {
		components = append(components, &discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: id, Value: value},
			},
		})
	}

	t.setInteraction(discordgo.InteractionModalSubmit, discordgo.ModalSubmitInteractionData{
		CustomID:   customID,
		Components: components,
	})
	return t
}

func (t *TestInteractionContext) setInteraction(kind discordgo.InteractionType, data discordgo.InteractionData) {
	t.Interaction = &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      kind,
			Data:      data,
			GuildID:   t.GuildID,
			ChannelID: t.ChannelID,
			Member:    t.Member,
		},
	}
	t.parseParams()
}

// MockResponder is a test implementation of InteractionResponder
type MockResponder struct {
	mu sync.Mutex

	Responses    []*Response
	Edits        []*Response
	Deletes      int
	RespondError error
	EditError    error
	Responded    bool
}

// NewMockResponder creates a new mock responder
func NewMockResponder() *MockResponder {
	return &MockResponder{
		Responses: make([]*Response, 0),
		Edits:     make([]*Response, 0),
	}
}

func (m *MockResponder) Respond(response *Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Responses = append(m.Responses, response)
	if m.RespondError == nil {
		m.Responded = true
	}
	return m.RespondError
}

func (m *MockResponder) Edit(response *Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Edits = append(m.Edits, response)
	return m.EditError
}

func (m *MockResponder) DeleteOriginal() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deletes++
	return nil
}

func (m *MockResponder) HasResponded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Responded
}

// EditCount returns how many edits were made
func (m *MockResponder) EditCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.Edits)
}

// LastEdit returns the most recent edit
func (m *MockResponder) LastEdit() *Response {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Edits) == 0 {
		return nil
	}
	return m.Edits[len(m.Edits)-1]
}

// LastResponse returns the last response sent
func (m *MockResponder) LastResponse() *Response {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Responses) > 0 {
		return m.Responses[len(m.Responses)-1]
	}
	if len(m.Edits) > 0 {
		return m.Edits[len(m.Edits)-1]
	}
	return nil
}
