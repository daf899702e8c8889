package delta

import (
	"fmt"
	"sync"
)

// EmbedHandler defines the algebra over one embed type's payloads.
// Handlers must be pure: same inputs, same outputs, no hidden state.
// The meaning of the payloads is entirely up to the embedder; the core
// algebra only routes matching embeds to the handler registered for
// their type.
type EmbedHandler interface {
	// Compose combines payload a (applied first) with b. keepNull is
	// true when a came from a retain, so nil markers inside the payload
	// must survive for later application.
	Compose(a, b interface{}, keepNull bool) interface{}
	// Invert returns the payload that undoes a against the base payload b.
	Invert(a, b interface{}) interface{}
	// Transform rewrites concurrent payload b against a. priority is
	// true when a is considered to have been applied first.
	Transform(a, b interface{}, priority bool) interface{}
}

var (
	embedMu       sync.RWMutex
	embedHandlers = make(map[string]EmbedHandler)
)

// RegisterEmbed registers handler for the given embed type, replacing
// any previous registration. Handlers must be registered before any
// algebra call that can encounter their embed type.
func RegisterEmbed(embedType string, handler EmbedHandler) {
	embedMu.Lock()
	defer embedMu.Unlock()
	embedHandlers[embedType] = handler
}

// UnregisterEmbed removes the handler for the given embed type.
func UnregisterEmbed(embedType string) {
	embedMu.Lock()
	defer embedMu.Unlock()
	delete(embedHandlers, embedType)
}

// getHandler returns the handler for embedType, or ErrUnknownEmbedType.
func getHandler(embedType string) (EmbedHandler, error) {
	if h := peekHandler(embedType); h != nil {
		return h, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEmbedType, embedType)
}

// peekHandler returns the handler for embedType, or nil.
func peekHandler(embedType string) EmbedHandler {
	embedMu.RLock()
	defer embedMu.RUnlock()
	return embedHandlers[embedType]
}

// embedTypeAndData validates that a and b are one-key embed objects of
// the same type and unwraps their payloads.
func embedTypeAndData(a, b Embed) (embedType string, aData, bData interface{}, err error) {
	aType, ok := a.TypeName()
	if !ok {
		return "", nil, nil, fmt.Errorf("%w: %v", ErrCannotRetainNonObject, a)
	}
	bType, ok := b.TypeName()
	if !ok {
		return "", nil, nil, fmt.Errorf("%w: %v", ErrCannotRetainNonObject, b)
	}
	if aType != bType {
		return "", nil, nil, fmt.Errorf("%w: %q != %q", ErrEmbedTypeMismatch, aType, bType)
	}
	return aType, a[aType], b[bType], nil
}
