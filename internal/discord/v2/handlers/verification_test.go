package handlers_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/handlers"
	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
	"github.com/KirkDiggler/guild-verification-bot/internal/events"
	"github.com/KirkDiggler/guild-verification-bot/internal/registry"
	"github.com/KirkDiggler/guild-verification-bot/internal/services/verification"
	mockverification "github.com/KirkDiggler/guild-verification-bot/internal/services/verification/mock"
	"github.com/KirkDiggler/guild-verification-bot/internal/uuid"
	"github.com/KirkDiggler/guild-verification-bot/internal/wizard"
)

var (
	testClasses = registry.MustNew("class", []registry.Entry{
		{DisplayName: "Mage", RoleID: "r-mage", Icon: "🔮"},
		{DisplayName: "Warrior", RoleID: "r-warrior"},
	})
	testRoles = registry.MustNew("gameplay role", []registry.Entry{
		{DisplayName: "Heal", RoleID: "r-heal", Icon: "💚"},
		{DisplayName: "Tank", RoleID: "r-tank", Icon: "🛡️"},
	})
)

// recordingListener captures emitted events
type recordingListener struct {
	mu     sync.Mutex
	events []events.Event
}

func (l *recordingListener) HandleEvent(_ context.Context, event events.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *recordingListener) Priority() int { return 0 }
func (l *recordingListener) ID() string    { return "recorder" }

type fixture struct {
	handler  *handlers.VerificationHandler
	service  *mockverification.MockService
	tracker  *wizard.Tracker
	listener *recordingListener
}

func setupVerification(t *testing.T, timeout time.Duration) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mockverification.NewMockService(ctrl)
	svc.EXPECT().Classes().Return(testClasses).AnyTimes()
	svc.EXPECT().GameplayRoles().Return(testRoles).AnyTimes()

	tracker := wizard.NewTracker(timeout)
	t.Cleanup(tracker.Stop)

	bus := events.NewBus()
	listener := &recordingListener{}
	bus.Subscribe(events.EventTypeVerificationCompleted, listener)

	handler, err := handlers.NewVerificationHandler(&handlers.VerificationHandlerConfig{
		Service:  svc,
		Tracker:  tracker,
		Events:   bus,
		IDs:      &uuid.SequenceGenerator{Prefix: "session"},
		Messages: handlers.Messages{Complete: "All done."},
		Dispatch: func(f func()) { f() },
	})
	require.NoError(t, err)

	return &fixture{handler: handler, service: svc, tracker: tracker, listener: listener}
}

func buttons(components []discordgo.MessageComponent) []discordgo.Button {
	var out []discordgo.Button
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if b, ok := inner.(discordgo.Button); ok {
				out = append(out, b)
			}
		}
	}
	return out
}

func handlerErrorCode(t *testing.T, err error) int {
	t.Helper()
	var handlerErr *core.HandlerError
	require.True(t, errors.As(err, &handlerErr), "expected HandlerError, got %v", err)
	return handlerErr.Code
}

func TestNewVerificationHandler_RequiresDependencies(t *testing.T) {
	_, err := handlers.NewVerificationHandler(nil)
	assert.Error(t, err)

	_, err = handlers.NewVerificationHandler(&handlers.VerificationHandlerConfig{})
	assert.Error(t, err)
}

func TestHandleStart_OpensNameModal(t *testing.T) {
	f := setupVerification(t, time.Minute)

	result, err := f.handler.HandleStart(core.NewTestInteractionContext().AsComponent("verify:start").InteractionContext)

	require.NoError(t, err)
	modal := result.Response.Modal
	require.NotNil(t, modal)
	assert.Equal(t, "verify:name:session-1", modal.CustomID)
	assert.Equal(t, "Enter Your Character Name", modal.Title)

	row := modal.Components[0].(discordgo.ActionsRow)
	input := row.Components[0].(discordgo.TextInput)
	assert.Equal(t, handlers.CharacterNameInputID, input.CustomID)
	assert.Equal(t, "Character Name", input.Label)
	assert.True(t, input.Required)
	assert.Equal(t, 32, input.MaxLength)
}

func TestHandleNameSubmit(t *testing.T) {
	t.Run("shows class buttons and arms the timeout", func(t *testing.T) {
		f := setupVerification(t, time.Minute)
		f.service.EXPECT().SetCharacterName(gomock.Any(), &verification.SetCharacterNameInput{
			GuildID: "test-guild-123", UserID: "test-user-123", Name: "Thrain",
		}).Return("Thrain", nil)

		ctx := core.NewTestInteractionContext().
			AsModal("verify:name:session-1", map[string]string{handlers.CharacterNameInputID: "Thrain"})

		result, err := f.handler.HandleNameSubmit(ctx.InteractionContext)
		require.NoError(t, err)

		resp := result.Response
		assert.True(t, resp.Ephemeral)
		require.Len(t, resp.Embeds, 1)
		assert.Equal(t, "⚔️ Class Selection", resp.Embeds[0].Title)
		assert.Contains(t, resp.Embeds[0].Description, "**Thrain**")

		bs := buttons(resp.Components)
		require.Len(t, bs, 2)
		assert.Equal(t, "Mage", bs[0].Label)
		assert.Equal(t, "verify:class:session-1:mage", bs[0].CustomID)
		assert.Equal(t, discordgo.SecondaryButton, bs[0].Style)
		assert.Equal(t, "⚔️", bs[1].Emoji.Name, "classes without an icon get the default")

		require.NotNil(t, result.AfterRespond)
		result.AfterRespond(core.NewMockResponder())
		assert.Equal(t, 1, f.tracker.Active())
	})

	t.Run("too long name surfaces validation message", func(t *testing.T) {
		f := setupVerification(t, time.Minute)
		f.service.EXPECT().SetCharacterName(gomock.Any(), gomock.Any()).
			Return("", apperr.Validation("Character name must be at most 32 characters"))

		ctx := core.NewTestInteractionContext().
			AsModal("verify:name:session-1", map[string]string{handlers.CharacterNameInputID: "x"})

		_, err := f.handler.HandleNameSubmit(ctx.InteractionContext)

		require.Error(t, err)
		var handlerErr *core.HandlerError
		require.ErrorAs(t, err, &handlerErr)
		assert.Equal(t, "Character name must be at most 32 characters", handlerErr.UserMessage)
		assert.Equal(t, 0, f.tracker.Active())
	})

	t.Run("unexpected failure asks to retry", func(t *testing.T) {
		f := setupVerification(t, time.Minute)
		f.service.EXPECT().SetCharacterName(gomock.Any(), gomock.Any()).Return("", errors.New("boom"))

		ctx := core.NewTestInteractionContext().
			AsModal("verify:name:session-1", map[string]string{handlers.CharacterNameInputID: "Thrain"})

		_, err := f.handler.HandleNameSubmit(ctx.InteractionContext)

		var handlerErr *core.HandlerError
		require.ErrorAs(t, err, &handlerErr)
		assert.Equal(t, "An error occurred while setting your character name. Please try again.", handlerErr.UserMessage)
	})
}

func TestHandleClassSelect(t *testing.T) {
	t.Run("grants class and shows role buttons", func(t *testing.T) {
		f := setupVerification(t, time.Minute)
		f.service.EXPECT().AssignClass(gomock.Any(), &verification.AssignInput{
			GuildID: "test-guild-123", UserID: "test-user-123", Key: "mage", CurrentRoles: []string{"other"},
		}).Return(&registry.Entry{DisplayName: "Mage", RoleID: "r-mage"}, nil)

		ctx := core.NewTestInteractionContext().WithRoles([]string{"other"}).AsComponent("verify:class:session-1:mage")

		result, err := f.handler.HandleClassSelect(ctx.InteractionContext)
		require.NoError(t, err)

		resp := result.Response
		assert.True(t, resp.Update)
		assert.Equal(t, "🎭 Role Selection", resp.Embeds[0].Title)
		assert.Contains(t, resp.Embeds[0].Description, "**Mage** class")

		bs := buttons(resp.Components)
		require.Len(t, bs, 2)
		assert.Equal(t, "verify:role:session-1:heal:mage", bs[0].CustomID)
		assert.Equal(t, discordgo.PrimaryButton, bs[0].Style)
	})

	t.Run("missing role names the role", func(t *testing.T) {
		f := setupVerification(t, time.Minute)
		f.service.EXPECT().AssignClass(gomock.Any(), gomock.Any()).
			Return(nil, apperr.NotFound("role missing").WithMeta(apperr.MetaRoleName, "Mage"))

		ctx := core.NewTestInteractionContext().AsComponent("verify:class:session-1:mage")

		_, err := f.handler.HandleClassSelect(ctx.InteractionContext)

		var handlerErr *core.HandlerError
		require.ErrorAs(t, err, &handlerErr)
		assert.Equal(t, "Could not find the Mage role. Please contact an administrator.", handlerErr.UserMessage)
	})

	t.Run("malformed custom id is rejected", func(t *testing.T) {
		f := setupVerification(t, time.Minute)

		_, err := f.handler.HandleClassSelect(core.NewTestInteractionContext().AsComponent("verify:class").InteractionContext)

		assert.Equal(t, core.ErrorCodeBadRequest, handlerErrorCode(t, err))
	})
}

func TestHandleRoleSelect_CompletesAndNotifies(t *testing.T) {
	f := setupVerification(t, time.Minute)
	f.service.EXPECT().AssignGameplayRole(gomock.Any(), gomock.Any()).
		Return(&registry.Entry{DisplayName: "Heal", RoleID: "r-heal"}, nil)

	ctx := core.NewTestInteractionContext().AsComponent("verify:role:session-1:heal:mage")
	ctx.Member.Nick = "Thrain"

	f.tracker.Arm("session-1", nil)
	result, err := f.handler.HandleRoleSelect(ctx.InteractionContext)
	require.NoError(t, err)
	assert.Equal(t, 0, f.tracker.Active(), "completion cancels the timeout")

	resp := result.Response
	assert.True(t, resp.Update)
	assert.NotNil(t, resp.Components)
	assert.Empty(t, resp.Components)
	assert.Equal(t, "✅ Verification Complete!", resp.Embeds[0].Title)
	assert.Equal(t, "All done.", resp.Embeds[0].Description)
	assert.Equal(t, "🎭 Role: **Heal**\n🎯 Character: **Thrain**", resp.Embeds[0].Fields[0].Value)

	assert.Empty(t, f.listener.events, "listeners run only after the response is sent")
	result.AfterRespond(core.NewMockResponder())

	require.Len(t, f.listener.events, 1)
	completed := f.listener.events[0].(*events.VerificationCompletedEvent)
	assert.Equal(t, events.CompletionRecord{
		GuildID:       "test-guild-123",
		UserID:        "test-user-123",
		UserMention:   "<@test-user-123>",
		CharacterName: "Thrain",
		ClassName:     "Mage",
		RoleName:      "Heal",
	}, completed.Record)
}

func TestRoleSelectFailure_DoesNotNotify(t *testing.T) {
	f := setupVerification(t, time.Minute)
	f.service.EXPECT().AssignGameplayRole(gomock.Any(), gomock.Any()).
		Return(nil, apperr.PermissionDenied("missing access").WithMeta(apperr.MetaOperation, apperr.OperationRole))

	_, err := f.handler.HandleRoleSelect(core.NewTestInteractionContext().AsComponent("verify:role:session-1:heal:mage").InteractionContext)

	var handlerErr *core.HandlerError
	require.ErrorAs(t, err, &handlerErr)
	assert.Equal(t, "I don't have permission to assign roles. Please contact an administrator.", handlerErr.UserMessage)
	assert.Empty(t, f.listener.events)
}

func TestExpiry_DisablesButtonsAndRejectsClicks(t *testing.T) {
	f := setupVerification(t, 20*time.Millisecond)
	f.service.EXPECT().SetCharacterName(gomock.Any(), gomock.Any()).Return("Thrain", nil)

	ctx := core.NewTestInteractionContext().
		AsModal("verify:name:session-1", map[string]string{handlers.CharacterNameInputID: "Thrain"})
	result, err := f.handler.HandleNameSubmit(ctx.InteractionContext)
	require.NoError(t, err)

	responder := core.NewMockResponder()
	result.AfterRespond(responder)

	require.Eventually(t, func() bool { return responder.EditCount() == 1 }, time.Second, 5*time.Millisecond)

	edit := responder.LastEdit()
	assert.Empty(t, edit.Content, "content is left unchanged")
	assert.Nil(t, edit.Embeds)
	for _, b := range buttons(edit.Components) {
		assert.True(t, b.Disabled, "%s should be disabled", b.Label)
	}

	_, err = f.handler.HandleClassSelect(core.NewTestInteractionContext().AsComponent("verify:class:session-1:mage").InteractionContext)
	assert.Equal(t, core.ErrorCodeGone, handlerErrorCode(t, err))

	_, err = f.handler.HandleRoleSelect(core.NewTestInteractionContext().AsComponent("verify:role:session-1:heal:mage").InteractionContext)
	assert.Equal(t, core.ErrorCodeGone, handlerErrorCode(t, err))
}

func TestLongestRegistryKeys_FitButtonIDs(t *testing.T) {
	className := strings.Repeat("c", registry.MaxKeyLength)
	roleName := strings.Repeat("r", registry.MaxKeyLength)
	classes := registry.MustNew("class", []registry.Entry{{DisplayName: className, RoleID: "r-class"}})
	roles := registry.MustNew("gameplay role", []registry.Entry{{DisplayName: roleName, RoleID: "r-role"}})

	ctrl := gomock.NewController(t)
	svc := mockverification.NewMockService(ctrl)
	svc.EXPECT().Classes().Return(classes).AnyTimes()
	svc.EXPECT().GameplayRoles().Return(roles).AnyTimes()

	tracker := wizard.NewTracker(time.Minute)
	t.Cleanup(tracker.Stop)

	handler, err := handlers.NewVerificationHandler(&handlers.VerificationHandlerConfig{
		Service: svc,
		Tracker: tracker,
		Events:  events.NewBus(),
		IDs:     uuid.NewGoogleUUIDGenerator(),
	})
	require.NoError(t, err)

	start, err := handler.HandleStart(core.NewTestInteractionContext().AsComponent("verify:start").InteractionContext)
	require.NoError(t, err)
	modalID := start.Response.Modal.CustomID

	svc.EXPECT().SetCharacterName(gomock.Any(), gomock.Any()).Return("Thrain", nil)
	named, err := handler.HandleNameSubmit(core.NewTestInteractionContext().
		AsModal(modalID, map[string]string{handlers.CharacterNameInputID: "Thrain"}).InteractionContext)
	require.NoError(t, err)

	classButtons := buttons(named.Response.Components)
	require.Len(t, classButtons, 1)
	assert.LessOrEqual(t, len(classButtons[0].CustomID), core.MaxCustomIDLength)

	svc.EXPECT().AssignClass(gomock.Any(), gomock.Any()).Return(&classes.Entries()[0], nil)
	classed, err := handler.HandleClassSelect(core.NewTestInteractionContext().
		AsComponent(classButtons[0].CustomID).InteractionContext)
	require.NoError(t, err)

	roleButtons := buttons(classed.Response.Components)
	require.Len(t, roleButtons, 1)
	assert.LessOrEqual(t, len(roleButtons[0].CustomID), core.MaxCustomIDLength)
}
