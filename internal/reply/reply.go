// Package reply turns query outcomes into display-ready messages shared by
// the Discord and HTTP frontends.
package reply

import (
	"errors"
	"fmt"
	"strings"

	"github.com/woozymasta/mcwho/internal/checker"
	"github.com/woozymasta/mcwho/internal/models"
)

// Message colors.
const (
	ColorError   = 0xe01b24
	ColorStatus  = 0x99c1f1
	ColorSuccess = 0x33d17a
)

// NoPlayers is shown instead of an empty player list.
const NoPlayers = "(None)"

// Field is a titled block of a message.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Message is a rendered reply. Ephemeral replies are visible to the requester only.
type Message struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description"`
	Footer      string  `json:"footer,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Color       int     `json:"color"`
	Ephemeral   bool    `json:"ephemeral"`
}

// Status renders a successful check, visible to everyone.
func Status(address string, st *models.ServerStatus) Message {
	msg := Message{
		Title:       address,
		Description: st.Description,
		Color:       ColorStatus,
		Footer:      fmt.Sprintf("Ping: %.3fms", st.LatencyMS),
		Fields: []Field{
			{Name: "Software", Value: st.Version},
			playersField(st.Players),
		},
	}

	if st.CountryCode != "" {
		msg.Fields = append(msg.Fields, Field{Name: "Location", Value: st.CountryCode})
	}

	return msg
}

func playersField(p models.Players) Field {
	field := Field{Name: fmt.Sprintf("Players (%d/%d)", p.Online, p.Max)}

	if len(p.Sample) == 0 {
		field.Value = NoPlayers
		return field
	}

	lines := make([]string, 0, len(p.Sample))
	for _, player := range p.Sample {
		lines = append(lines, "- "+player.Name)
	}
	field.Value = strings.Join(lines, "\n")

	return field
}

// CheckFailure renders a failed check. Failures are always ephemeral.
func CheckFailure(err error) Message {
	if errors.Is(err, checker.ErrNoDefaultConfigured) {
		return failure("This Discord server does not have a default Minecraft server; you must specify one.")
	}

	kind, _ := checker.KindOf(err)
	switch kind {
	case checker.InvalidAddress:
		return failure("That is not a valid address.")
	case checker.Offline:
		return failure("This server is offline.")
	case checker.ConnectionRefused:
		return failure("The connection was refused.")
	default:
		return failure("Failed to ping server.")
	}
}

// DefaultUpdated renders a stored default server.
func DefaultUpdated(address string) Message {
	return Message{
		Description: fmt.Sprintf("Successfully updated default server to `%s`", address),
		Color:       ColorSuccess,
		Ephemeral:   true,
	}
}

// SetDefaultFailure renders a rejected default server update.
func SetDefaultFailure(err error) Message {
	kind, _ := checker.KindOf(err)
	switch kind {
	case checker.InvalidAddress:
		return failure("**Not updated:** That is not a valid address.")
	case checker.Offline:
		return failure("**Not updated:** Server must be online.")
	case checker.ConnectionRefused:
		return failure("**Not updated:** Connection refused.")
	default:
		return failure("Failed to update default server.")
	}
}

// Plain renders an ephemeral error text not tied to a query.
func Plain(text string) Message {
	return failure(text)
}

func failure(text string) Message {
	return Message{Description: text, Color: ColorError, Ephemeral: true}
}
