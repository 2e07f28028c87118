package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Pipeline manages handler registration and execution
type Pipeline struct {
	// Handlers registered in the pipeline
	handlers []Handler

	// Middleware to apply to all handlers
	middleware []Middleware

	// Error handler for uncaught errors
	errorHandler ErrorHandler

	// Creates the responder for each interaction
	newResponder ResponderFactory

	// Mutex for thread-safe handler registration
	mu sync.RWMutex
}

// Middleware is a function that wraps a handler
type Middleware func(Handler) Handler

// ErrorHandler handles errors that occur during pipeline execution
type ErrorHandler func(ctx *InteractionContext, err error) *HandlerResult

// NewPipeline creates a new handler pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{
		handlers:     make([]Handler, 0),
		middleware:   make([]Middleware, 0),
		errorHandler: defaultErrorHandler,
		newResponder: NewDiscordResponder,
	}
}

// Register adds handlers to the pipeline. Middleware added afterwards does
// not apply to handlers registered earlier.
func (p *Pipeline) Register(handlers ...Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, h := range handlers {
		wrapped := h
		for i := len(p.middleware) - 1; i >= 0; i-- {
			wrapped = p.middleware[i](wrapped)
		}
		p.handlers = append(p.handlers, &routedHandler{route: h, next: wrapped})
	}
}

// routedHandler keeps the registered handler's CanHandle after middleware
// has replaced it with a HandlerFunc.
type routedHandler struct {
	route Handler
	next  Handler
}

func (h *routedHandler) CanHandle(ctx *InteractionContext) bool {
	return h.route.CanHandle(ctx)
}

func (h *routedHandler) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	return h.next.Handle(ctx)
}

// Use adds middleware to the pipeline
func (p *Pipeline) Use(middleware ...Middleware) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.middleware = append(p.middleware, middleware...)
}

// SetErrorHandler sets a custom error handler
func (p *Pipeline) SetErrorHandler(handler ErrorHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.errorHandler = handler
}

// SetResponderFactory replaces how responders are created
func (p *Pipeline) SetResponderFactory(factory ResponderFactory) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.newResponder = factory
}

// Execute runs the pipeline for an interaction
func (p *Pipeline) Execute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	interactionCtx := NewInteractionContext(ctx, s, i)

	p.mu.RLock()
	handlers := make([]Handler, len(p.handlers))
	copy(handlers, p.handlers)
	errorHandler := p.errorHandler
	newResponder := p.newResponder
	p.mu.RUnlock()

	responder := newResponder(s, i)

	handled := false

	for _, handler := range handlers {
		if !handler.CanHandle(interactionCtx) {
			continue
		}

		result, err := handler.Handle(interactionCtx)
		if err != nil {
			result = errorHandler(interactionCtx, err)
		}

		if result != nil && result.Response != nil {
			if err := responder.Respond(result.Response); err != nil {
				return fmt.Errorf("failed to send response: %w", err)
			}
			if result.AfterRespond != nil {
				result.AfterRespond(responder)
			}
		}

		// The first handler that accepts the interaction owns it
		handled = true
		break
	}

	if !handled && !responder.HasResponded() {
		log.Printf("[Pipeline] No handler for interaction %q from user %s",
			interactionCtx.GetCustomID()+interactionCtx.GetCommandName(), interactionCtx.UserID)
		return responder.Respond(NewEphemeralResponse("I don't know how to handle that interaction."))
	}

	return nil
}

// Clear removes all handlers from the pipeline
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.handlers = make([]Handler, 0)
}

// HandlerCount returns the number of registered handlers
func (p *Pipeline) HandlerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.handlers)
}

// defaultErrorHandler is the default error handler
func defaultErrorHandler(ctx *InteractionContext, err error) *HandlerResult {
	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) && handlerErr.ShowToUser {
		return &HandlerResult{
			Response: NewEphemeralResponse(handlerErr.UserMessage),
		}
	}

	return &HandlerResult{
		Response: NewEphemeralResponse("An error occurred while processing your request."),
	}
}
