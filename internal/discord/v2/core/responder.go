package core

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// InteractionResponder provides an abstraction over Discord's interaction response API
type InteractionResponder interface {
	// Respond sends the initial response: a message, an in-place update or a modal
	Respond(response *Response) error

	// Edit updates the message produced by the initial response
	Edit(response *Response) error

	// DeleteOriginal deletes the original response
	DeleteOriginal() error

	// HasResponded returns whether the initial response was sent
	HasResponded() bool
}

// ResponderFactory creates the responder for an interaction
type ResponderFactory func(s *discordgo.Session, i *discordgo.InteractionCreate) InteractionResponder

// DiscordResponder implements InteractionResponder using Discord's API
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate

	mu        sync.Mutex
	responded bool
}

// NewDiscordResponder creates a new Discord responder
func NewDiscordResponder(s *discordgo.Session, i *discordgo.InteractionCreate) InteractionResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends the initial response. A second call edits instead.
func (r *DiscordResponder) Respond(response *Response) error {
	if r.HasResponded() {
		return r.Edit(response)
	}

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: buildResponseData(response),
	}

	switch {
	case response.Modal != nil:
		resp.Type = discordgo.InteractionResponseModal
		resp.Data = &discordgo.InteractionResponseData{
			CustomID:   response.Modal.CustomID,
			Title:      response.Modal.Title,
			Components: response.Modal.Components,
		}
	case response.Update:
		resp.Type = discordgo.InteractionResponseUpdateMessage
	}

	if err := r.session.InteractionRespond(r.interaction.Interaction, resp); err != nil {
		return err
	}

	r.mu.Lock()
	r.responded = true
	r.mu.Unlock()

	if response.DeleteAfter > 0 && response.Modal == nil {
		r.scheduleDelete(response.DeleteAfter)
	}

	return nil
}

// Edit updates the original response
func (r *DiscordResponder) Edit(response *Response) error {
	if !r.HasResponded() {
		return fmt.Errorf("cannot edit before responding")
	}

	webhook := &discordgo.WebhookEdit{
		AllowedMentions: response.AllowedMentions,
	}
	if response.Content != "" {
		webhook.Content = &response.Content
	}
	if response.Embeds != nil {
		webhook.Embeds = &response.Embeds
	}
	if response.Components != nil {
		webhook.Components = &response.Components
	}

	_, err := r.session.InteractionResponseEdit(r.interaction.Interaction, webhook)
	return err
}

// DeleteOriginal deletes the original response
func (r *DiscordResponder) DeleteOriginal() error {
	return r.session.InteractionResponseDelete(r.interaction.Interaction)
}

// HasResponded returns whether this responder has already sent a response
func (r *DiscordResponder) HasResponded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responded
}

func (r *DiscordResponder) scheduleDelete(after time.Duration) {
	time.AfterFunc(after, func() {
		if err := r.DeleteOriginal(); err != nil {
			log.Printf("[Responder] Failed to delete transient response: %v", err)
		}
	})
}

// buildResponseData converts our Response to Discord's InteractionResponseData
func buildResponseData(response *Response) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:         response.Content,
		Embeds:          response.Embeds,
		Components:      response.Components,
		AllowedMentions: response.AllowedMentions,
	}

	if response.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return data
}
