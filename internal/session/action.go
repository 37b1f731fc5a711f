package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/talgya/worldcore/internal/corerr"
)

// NewActionID mints a fresh action identifier (spec.md section 6's action
// envelope). Session ids come from the same uuid source (see
// Manager.Authenticate); bearer tokens carry no uuid.
func NewActionID() string {
	return uuid.NewString()
}

// Kind enumerates the player action kinds spec.md section 4.9 validates.
type Kind uint8

const (
	Move Kind = iota
	Harvest
	Craft
	Attack
	Trade
	Build
	Chat
	UseItem
	DropItem
	PickUpItem
	TransferOwnership
	JoinClan
)

// Status is the lifecycle a PlayerAction progresses through.
type Status uint8

const (
	Pending Status = iota
	Accepted
	Rejected
	Completed
)

const livenessWindow = 5 * time.Second
const maxChatLen = 500

// Action is the player action envelope (spec.md section 3).
type Action struct {
	ActionID   string
	PlayerID   string
	Kind       Kind
	Parameters map[string]any
	Timestamp  time.Time
	Status     Status
}

// HasCharacter reports whether the asserting player owns a character;
// callers supply this from the character store since session has no
// visibility into internal/character.
type HasCharacter func(playerID string) bool

// Validate implements spec.md section 4.9's action validation: liveness,
// player binding, per-kind required parameters, and the "all non-CHAT
// actions require a character" rule.
func Validate(a Action, assertingPlayerID string, now time.Time, hasCharacter HasCharacter) error {
	if a.PlayerID != assertingPlayerID {
		return corerr.Validation("action %s does not belong to asserting player", a.ActionID)
	}
	if now.Sub(a.Timestamp) > livenessWindow {
		return corerr.Validation("action %s expired: age exceeds %s liveness window", a.ActionID, livenessWindow)
	}

	if a.Kind != Chat && !hasCharacter(a.PlayerID) {
		return corerr.Validation("player %s has no character", a.PlayerID)
	}

	switch a.Kind {
	case Move:
		return requireParams(a, "x", "y")
	case Harvest:
		return requireParams(a, "resource_node_id")
	case Craft:
		return requireParams(a, "recipe_id")
	case Attack:
		return requireParams(a, "target_id")
	case Trade:
		return requireParams(a, "target_player_id", "offered_items")
	case Build:
		return requireParams(a, "structure_type", "x", "y")
	case Chat:
		msg, ok := a.Parameters["message"].(string)
		if !ok || msg == "" {
			return corerr.Validation("chat action requires a non-empty message")
		}
		if len(msg) > maxChatLen {
			return corerr.Validation("chat message exceeds %d characters", maxChatLen)
		}
	case UseItem, DropItem, PickUpItem:
		return requireParams(a, "item_id")
	case TransferOwnership:
		return requireParams(a, "structure_id", "target_player_id")
	case JoinClan:
		return requireParams(a, "clan_id")
	}
	return nil
}

func requireParams(a Action, keys ...string) error {
	for _, k := range keys {
		if v, ok := a.Parameters[k]; !ok || v == nil {
			return corerr.Validation("action %s (kind %d) missing required parameter %q", a.ActionID, a.Kind, k)
		}
	}
	return nil
}
