package app

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

var mentionRe = regexp.MustCompile(`@(\w+)`)

// ExtractMentions pulls @-prefixed word tokens out of text, deduplicated,
// without the @ sign.
func ExtractMentions(text string) []string {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		key := strings.ToLower(m[1])
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// aliasBook remembers which anonymous alias stands for which user within
// a room, so mentions of an alias can be resolved. Entries live as long
// as the process; aliases are stable per user per scope.
type aliasBook struct {
	mu     sync.RWMutex
	byRoom map[domain.RoomID]map[string]domain.UserID // key: lowercase alias
}

func newAliasBook() *aliasBook {
	return &aliasBook{byRoom: make(map[domain.RoomID]map[string]domain.UserID)}
}

func (b *aliasBook) record(rid domain.RoomID, alias string, uid domain.UserID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byRoom[rid]; !ok {
		b.byRoom[rid] = make(map[string]domain.UserID)
	}
	b.byRoom[rid][strings.ToLower(alias)] = uid
}

func (b *aliasBook) lookup(rid domain.RoomID, token string) (domain.UserID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	uid, ok := b.byRoom[rid][strings.ToLower(token)]
	return uid, ok
}

// resolveMentions maps raw tokens to room members. Real usernames take
// priority over anonymous aliases: an alias can coincidentally collide
// with a real username, and resolving aliases first would mis-attribute
// the mention. Unresolved tokens are dropped silently.
func (r *Relay) resolveMentions(tokens []string, rid domain.RoomID) []domain.Mention {
	members := r.tracker.MembersOf(rid)
	byName := make(map[string]domain.UserID, len(members))
	for _, uid := range members {
		if name, ok := r.registry.Username(uid); ok {
			byName[strings.ToLower(name)] = uid
		}
	}

	out := make([]domain.Mention, 0, len(tokens))
	for _, tok := range tokens {
		if uid, ok := byName[strings.ToLower(tok)]; ok {
			out = append(out, domain.Mention{Token: tok, UserID: uid})
			continue
		}
		if uid, ok := r.aliases.lookup(rid, tok); ok {
			out = append(out, domain.Mention{Token: tok, UserID: uid})
		}
	}
	return out
}

// notifyMentions records every resolved mention and pushes the live
// notification unless the target muted the scope. A muted mention still
// lands in history; only the push is suppressed.
func (r *Relay) notifyMentions(ctx context.Context, msg *domain.Message, author *domain.User) []domain.Mention {
	rid := msg.RoomID
	mentions := r.resolveMentions(ExtractMentions(msg.Content), rid)

	for _, m := range mentions {
		if m.UserID == author.ID {
			continue
		}

		err := r.ext.Notify.RecordMention(ctx, core.MentionRecord{
			UserID:    m.UserID,
			AuthorID:  author.ID,
			RoomID:    rid,
			MessageID: msg.ID,
		})
		if err != nil {
			log.Error().Err(err).Str("module", "app.mentions").Str("user", string(m.UserID)).Msg("record mention failed")
		}

		muted, err := r.ext.Notify.IsMuted(ctx, m.UserID, rid.Kind(), rid.ScopeID())
		if err != nil {
			log.Error().Err(err).Str("module", "app.mentions").Str("user", string(m.UserID)).Msg("mute lookup failed")
			continue
		}
		if muted {
			continue
		}

		r.SendToUser(m.UserID, MentionEvent{
			Type:      EvtMention,
			RoomID:    rid,
			ScopeKind: rid.Kind(),
			ScopeID:   rid.ScopeID(),
			MessageID: msg.ID,
			By:        msg.DisplayName,
		})
	}
	return mentions
}
