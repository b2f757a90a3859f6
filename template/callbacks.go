/*
 * Copyright 2026 The data-helpers Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package template

import (
	"fmt"
	"strings"
	"sync"
)

// Callback is a user-supplied transform resolvable by name through the
// callback filter: `{{ user.name | callback:slugify }}`.
type Callback func(value any) (any, error)

// CallbackRegistry maps names to callbacks. The registry is passed through
// the mapping call explicitly; the package-level default covers the common
// register-once-per-process usage.
type CallbackRegistry struct {
	mu        sync.RWMutex
	callbacks map[string]Callback
}

// NewCallbackRegistry creates an empty registry.
func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{callbacks: make(map[string]Callback)}
}

// Register adds a callback. Re-registering a name is an error.
func (r *CallbackRegistry) Register(name string, cb Callback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := r.callbacks[key]; exists {
		return fmt.Errorf("callback %s already registered", key)
	}
	r.callbacks[key] = cb
	return nil
}

// Unregister removes a callback.
func (r *CallbackRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.callbacks, strings.ToLower(name))
}

// Clear removes every callback.
func (r *CallbackRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = make(map[string]Callback)
}

// Get looks up a callback by name.
func (r *CallbackRegistry) Get(name string) (Callback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.callbacks[strings.ToLower(name)]
	return cb, ok
}

var defaultCallbacks = NewCallbackRegistry()

// DefaultCallbacks returns the package-level callback registry.
func DefaultCallbacks() *CallbackRegistry { return defaultCallbacks }
