package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9._-]+)`)

// ExtractMentions scans free text for @handle tokens. Handles are folded to
// lowercase and deduplicated; the result is sorted for deterministic output.
// No matches yields an empty slice, never an error.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	handles := make([]string, 0, len(matches))
	for _, m := range matches {
		handle := strings.ToLower(m[1])
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		handles = append(handles, handle)
	}

	sort.Strings(handles)
	return handles
}

// MentionResolver resolves lowercase handles to workspace member user ids by
// case-insensitive match against the member's email local part or display
// name.
type MentionResolver interface {
	FindMembersByHandles(ctx context.Context, workspaceID uuid.UUID, handles []string) ([]uuid.UUID, error)
}

// NotifyMentions extracts handles from text, resolves them to workspace
// members, and creates one mention notification per resolved user in a
// single batch. The acting user is excluded even if self-mentioned. With no
// handles or no resolved users this is a strict no-op: no query runs with
// zero criteria and no rows are written.
func (s *NotificationService) NotifyMentions(ctx context.Context, workspaceID, actorUserID uuid.UUID, text string, payload json.RawMessage) error {
	handles := ExtractMentions(text)
	if len(handles) == 0 {
		return nil
	}

	userIDs, err := s.resolver.FindMembersByHandles(ctx, workspaceID, handles)
	if err != nil {
		return fmt.Errorf("failed to resolve mentions: %w", err)
	}

	recipients := userIDs[:0]
	for _, id := range userIDs {
		if id != actorUserID {
			recipients = append(recipients, id)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	return s.createForUsers(ctx, workspaceID, recipients, domain.NotificationMention, payload)
}
