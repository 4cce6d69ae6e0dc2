package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by this service.
const (
	ActionSubmitReview   = "submit_review"
	ActionAssignReviewer = "assign_reviewer"
	ActionApproveReview  = "approve_review"
	ActionRejectReview   = "reject_review"
	ActionAddMember      = "add_member"
	ActionChangeRole     = "change_role"
	ActionRemoveMember   = "remove_member"
)

// Target types referenced by audit entries, watches, and read state.
const (
	TargetRevision = "revision"
	TargetArticle  = "article"
	TargetMember   = "member"
)

// Meta is the optional structured payload of an audit entry. It keeps three
// distinct states: absent (never recorded), explicit null (recorded as "no
// metadata"), and a structured value. The distinction survives persistence:
// absent maps to a SQL NULL column, explicit null to jsonb null, and a value
// to a jsonb document.
type Meta struct {
	present bool
	value   json.RawMessage // nil when the recorded value is explicit null
}

// MetaAbsent returns the zero Meta: no metadata field at all.
func MetaAbsent() Meta {
	return Meta{}
}

// MetaNull returns a Meta recorded as explicit null.
func MetaNull() Meta {
	return Meta{present: true}
}

// MetaValue returns a Meta holding v serialized as JSON.
func MetaValue(v any) (Meta, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Meta{}, fmt.Errorf("failed to marshal meta: %w", err)
	}
	return Meta{present: true, value: raw}, nil
}

// MetaRaw returns a Meta holding an already-serialized JSON document.
func MetaRaw(raw json.RawMessage) Meta {
	return Meta{present: true, value: raw}
}

// Present reports whether the meta field was recorded at all.
func (m Meta) Present() bool { return m.present }

// Null reports whether the recorded value is explicit null.
func (m Meta) Null() bool { return m.present && m.value == nil }

// Value returns the serialized document, nil for absent or null.
func (m Meta) Value() json.RawMessage { return m.value }

// DatabaseValue returns the value to bind into a jsonb column: untyped nil
// for absent, the literal null document for explicit null, or the document.
func (m Meta) DatabaseValue() any {
	if !m.present {
		return nil
	}
	if m.value == nil {
		return []byte("null")
	}
	return []byte(m.value)
}

// MetaFromColumn reconstructs a Meta from a scanned jsonb column.
func MetaFromColumn(raw []byte) Meta {
	if raw == nil {
		return MetaAbsent()
	}
	if string(raw) == "null" {
		return MetaNull()
	}
	return MetaRaw(json.RawMessage(raw))
}

// MarshalJSON renders absent and explicit null both as JSON null; API
// consumers see the distinction via the separate has_meta field if they need
// it, storage keeps it exactly.
func (m Meta) MarshalJSON() ([]byte, error) {
	if !m.present || m.value == nil {
		return []byte("null"), nil
	}
	return m.value, nil
}

// AuditLogEntry is one immutable record of who did what to which target.
// Entries are never updated or deleted; the trail is the durable record of
// what happened, independent of current entity state.
type AuditLogEntry struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	ActorUserID uuid.UUID `json:"actor_user_id"`
	Action      string    `json:"action"`
	TargetType  string    `json:"target_type"`
	TargetID    string    `json:"target_id"`
	Meta        Meta      `json:"meta"`
	CreatedAt   time.Time `json:"created_at"`
}
