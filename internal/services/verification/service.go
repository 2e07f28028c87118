package verification

//go:generate mockgen -destination=mock/mock_service.go -package=mockverification -source=service.go

import (
	"context"
	"log"
	"slices"

	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
	"github.com/KirkDiggler/guild-verification-bot/internal/guild"
	"github.com/KirkDiggler/guild-verification-bot/internal/registry"
	"github.com/KirkDiggler/guild-verification-bot/internal/wizard"
)

// Service applies the guild side-effects of each wizard step
type Service interface {
	// SetCharacterName validates the name and sets it as the member's nickname
	SetCharacterName(ctx context.Context, input *SetCharacterNameInput) (string, error)

	// AssignClass grants the role registered for the class key
	AssignClass(ctx context.Context, input *AssignInput) (*registry.Entry, error)

	// AssignGameplayRole grants the role registered for the gameplay-role key
	AssignGameplayRole(ctx context.Context, input *AssignInput) (*registry.Entry, error)

	// Classes returns the class registry
	Classes() *registry.Registry

	// GameplayRoles returns the gameplay-role registry
	GameplayRoles() *registry.Registry
}

// SetCharacterNameInput contains the modal submission
type SetCharacterNameInput struct {
	GuildID string
	UserID  string
	Name    string
}

// AssignInput identifies a member and the selected registry key
type AssignInput struct {
	GuildID string
	UserID  string
	Key     string
	// CurrentRoles are the role ids the member held when they clicked.
	// Other roles from the same registry found here are revoked.
	CurrentRoles []string
}

type service struct {
	guild   guild.Client
	classes *registry.Registry
	roles   *registry.Registry
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Guild         guild.Client       // Required
	Classes       *registry.Registry // Required
	GameplayRoles *registry.Registry // Required
}

// NewService creates a new verification service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Guild == nil {
		panic("guild client is required")
	}
	if cfg.Classes == nil {
		panic("class registry is required")
	}
	if cfg.GameplayRoles == nil {
		panic("gameplay role registry is required")
	}

	return &service{
		guild:   cfg.Guild,
		classes: cfg.Classes,
		roles:   cfg.GameplayRoles,
	}
}

func (s *service) Classes() *registry.Registry       { return s.classes }
func (s *service) GameplayRoles() *registry.Registry { return s.roles }

// SetCharacterName validates before touching the guild so an invalid name
// never reaches the nickname API.
func (s *service) SetCharacterName(ctx context.Context, input *SetCharacterNameInput) (string, error) {
	if input == nil {
		return "", apperr.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return "", apperr.InvalidArgument("guild and user are required")
	}

	name, err := wizard.ValidateCharacterName(input.Name)
	if err != nil {
		return "", err
	}

	if err := s.guild.SetNickname(ctx, input.GuildID, input.UserID, name); err != nil {
		return "", apperr.Wrap(err, "failed to set character name").
			WithMeta(apperr.MetaOperation, apperr.OperationNickname)
	}

	log.Printf("[Verification] Set nickname for user %s to %q", input.UserID, name)
	return name, nil
}

func (s *service) AssignClass(ctx context.Context, input *AssignInput) (*registry.Entry, error) {
	return s.assign(ctx, s.classes, input)
}

func (s *service) AssignGameplayRole(ctx context.Context, input *AssignInput) (*registry.Entry, error) {
	return s.assign(ctx, s.roles, input)
}

func (s *service) assign(ctx context.Context, reg *registry.Registry, input *AssignInput) (*registry.Entry, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return nil, apperr.InvalidArgument("guild and user are required")
	}

	entry, ok := reg.Lookup(input.Key)
	if !ok {
		return nil, apperr.NotFoundf("unknown %s %q", reg.Kind(), input.Key).
			WithMeta(apperr.MetaOperation, apperr.OperationRole).
			WithMeta(apperr.MetaRoleName, input.Key)
	}

	if _, err := s.guild.Role(ctx, input.GuildID, entry.RoleID); err != nil {
		return nil, apperr.Wrapf(err, "failed to resolve %s role", entry.DisplayName).
			WithMeta(apperr.MetaOperation, apperr.OperationRole).
			WithMeta(apperr.MetaRoleName, entry.DisplayName)
	}

	if err := s.guild.AddRole(ctx, input.GuildID, input.UserID, entry.RoleID); err != nil {
		return nil, apperr.Wrapf(err, "failed to grant %s role", entry.DisplayName).
			WithMeta(apperr.MetaOperation, apperr.OperationRole).
			WithMeta(apperr.MetaRoleName, entry.DisplayName)
	}

	// Latest choice wins on a re-run. The grant already succeeded, so a
	// failed revoke is logged rather than surfaced.
	for _, roleID := range reg.RoleIDs() {
		if roleID == entry.RoleID || !slices.Contains(input.CurrentRoles, roleID) {
			continue
		}
		if err := s.guild.RemoveRole(ctx, input.GuildID, input.UserID, roleID); err != nil {
			log.Printf("[Verification] Failed to revoke previous %s role %s from user %s: %v",
				reg.Kind(), roleID, input.UserID, err)
		}
	}

	log.Printf("[Verification] Granted %s %s (%s) to user %s", reg.Kind(), entry.DisplayName, entry.RoleID, input.UserID)
	return &entry, nil
}
