package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/events"
	"github.com/KirkDiggler/guild-verification-bot/internal/services/verification"
	"github.com/KirkDiggler/guild-verification-bot/internal/uuid"
	"github.com/KirkDiggler/guild-verification-bot/internal/wizard"
)

const (
	nameErrorMessage  = "An error occurred while setting your character name. Please try again."
	classErrorMessage = "An error occurred while assigning your class. Please try again."
	roleErrorMessage  = "An error occurred while assigning your role. Please try again."
)

// VerificationHandler drives a member through name, class and gameplay role.
// Every view it sends encodes the session id, so handlers keep no state
// beyond the expiry tracker.
type VerificationHandler struct {
	service  verification.Service
	tracker  *wizard.Tracker
	bus      *events.Bus
	ids      uuid.Generator
	messages Messages
	dispatch func(func())

	customIDBuilder *core.CustomIDBuilder
}

// VerificationHandlerConfig holds the configuration
type VerificationHandlerConfig struct {
	Service  verification.Service // Required
	Tracker  *wizard.Tracker      // Required
	Events   *events.Bus          // Required
	Messages Messages

	// IDs generates session ids; defaults to random UUIDs
	IDs uuid.Generator

	// Dispatch runs the completion event off the interaction path;
	// defaults to a new goroutine
	Dispatch func(func())
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(cfg *VerificationHandlerConfig) (*VerificationHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("service is required")
	}
	if cfg.Tracker == nil {
		return nil, fmt.Errorf("tracker is required")
	}
	if cfg.Events == nil {
		return nil, fmt.Errorf("event bus is required")
	}

	ids := cfg.IDs
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}

	dispatch := cfg.Dispatch
	if dispatch == nil {
		dispatch = func(f func()) { go f() }
	}

	return &VerificationHandler{
		service:         cfg.Service,
		tracker:         cfg.Tracker,
		bus:             cfg.Events,
		ids:             ids,
		messages:        cfg.Messages,
		dispatch:        dispatch,
		customIDBuilder: core.NewCustomIDBuilder(Domain),
	}, nil
}

// HandleStart opens the character name modal for a new session
func (h *VerificationHandler) HandleStart(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	if _, err := wizard.Next(wizard.StepIdle, wizard.EventStartClicked); err != nil {
		return nil, core.NewInternalError(err)
	}

	session := h.ids.New()
	log.Printf("[Verification] User %s started verification (session %s)", ctx.UserID, session)

	return &core.HandlerResult{
		Response: nameModal(h.customIDBuilder, session),
	}, nil
}

// HandleNameSubmit sets the nickname and shows the class buttons
func (h *VerificationHandler) HandleNameSubmit(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	customID, err := core.ParseCustomID(ctx.GetCustomID())
	if err != nil || customID.Target == "" {
		return nil, core.NewValidationError("Invalid verification form.")
	}
	session := customID.Target

	if _, err := wizard.Next(wizard.StepNameCapture, wizard.EventNameSubmitted); err != nil {
		return nil, core.NewInternalError(err)
	}

	name, err := h.service.SetCharacterName(ctx.Context, &verification.SetCharacterNameInput{
		GuildID: ctx.GuildID,
		UserID:  ctx.UserID,
		Name:    ctx.GetStringParam(CharacterNameInputID),
	})
	if err != nil {
		return nil, core.FromError(err, nameErrorMessage)
	}

	response := classView(h.customIDBuilder, h.service.Classes(), session, name).AsEphemeral()

	return &core.HandlerResult{
		Response:     response,
		AfterRespond: h.armExpiry(session, response.Components),
	}, nil
}

// HandleClassSelect grants the class role and replaces the view with the
// gameplay role buttons
func (h *VerificationHandler) HandleClassSelect(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	session, args, err := h.advance(ctx, wizard.StepClassSelect, wizard.EventClassChosen, 1)
	if err != nil {
		return nil, err
	}

	class, err := h.service.AssignClass(ctx.Context, &verification.AssignInput{
		GuildID:      ctx.GuildID,
		UserID:       ctx.UserID,
		Key:          args[0],
		CurrentRoles: ctx.Roles(),
	})
	if err != nil {
		return nil, core.FromError(err, classErrorMessage)
	}

	response := roleView(h.customIDBuilder, h.service.GameplayRoles(), session, *class).AsUpdate()

	return &core.HandlerResult{
		Response:     response,
		AfterRespond: h.armExpiry(session, response.Components),
	}, nil
}

// HandleRoleSelect grants the gameplay role, shows the completion summary
// and notifies listeners
func (h *VerificationHandler) HandleRoleSelect(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	session, args, err := h.advance(ctx, wizard.StepRoleSelect, wizard.EventRoleChosen, 2)
	if err != nil {
		return nil, err
	}

	role, err := h.service.AssignGameplayRole(ctx.Context, &verification.AssignInput{
		GuildID:      ctx.GuildID,
		UserID:       ctx.UserID,
		Key:          args[0],
		CurrentRoles: ctx.Roles(),
	})
	if err != nil {
		return nil, core.FromError(err, roleErrorMessage)
	}

	h.tracker.Cancel(session)

	className := args[1]
	if class, ok := h.service.Classes().Lookup(args[1]); ok {
		className = class.DisplayName
	}

	record := events.CompletionRecord{
		GuildID:       ctx.GuildID,
		UserID:        ctx.UserID,
		UserMention:   ctx.UserMention(),
		CharacterName: characterName(ctx.Member),
		ClassName:     className,
		RoleName:      role.DisplayName,
	}

	log.Printf("[Verification] User %s completed verification as %s %s (%s)",
		ctx.UserID, record.ClassName, record.RoleName, record.CharacterName)

	return &core.HandlerResult{
		Response: completionView(h.messages, record).AsUpdate(),
		AfterRespond: func(core.InteractionResponder) {
			h.dispatch(func() {
				if err := h.bus.Emit(context.Background(), events.NewVerificationCompletedEvent(record)); err != nil {
					log.Printf("[Verification] Completion listeners failed for user %s: %v", record.UserID, err)
				}
			})
		},
	}, nil
}

// advance parses the session and args from the clicked button and applies
// the event to the step the view represents. Clicks on an expired view are
// rejected.
func (h *VerificationHandler) advance(ctx *core.InteractionContext, displayed wizard.Step, event wizard.Event, wantArgs int) (string, []string, error) {
	customID, err := core.ParseCustomID(ctx.GetCustomID())
	if err != nil || customID.Target == "" || len(customID.Args) < wantArgs {
		return "", nil, core.NewValidationError("Invalid selection.")
	}

	step := h.tracker.Resolve(customID.Target, displayed)
	if _, err := wizard.Next(step, event); err != nil {
		if step == wizard.StepExpired {
			return "", nil, core.NewExpiredError()
		}
		return "", nil, core.NewInternalError(err)
	}

	return customID.Target, customID.Args, nil
}

// armExpiry starts the view timeout once the view is visible. On expiry the
// buttons are disabled in place and the content is left untouched.
func (h *VerificationHandler) armExpiry(session string, components []discordgo.MessageComponent) func(core.InteractionResponder) {
	return func(responder core.InteractionResponder) {
		h.tracker.Arm(session, func() {
			if err := responder.Edit(&core.Response{Components: builders.DisableAll(components)}); err != nil {
				log.Printf("[Verification] Failed to disable expired view for session %s: %v", session, err)
				return
			}
			log.Printf("[Verification] Session %s expired", session)
		})
	}
}

// characterName prefers the nickname set during the name step
func characterName(member *discordgo.Member) string {
	if member == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil {
		return member.User.Username
	}
	return ""
}
