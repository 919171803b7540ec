// Package chat drives the bounded conversation loop between the
// reasoning engine and the data-lookup tools.
package chat

// Message roles accepted on the transport boundary.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is the plain-text transport form of one conversation entry.
// The caller supplies the full prior conversation on every request; the
// orchestrator never stores history between runs.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
