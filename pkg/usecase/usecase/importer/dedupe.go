package importer

import (
	"strconv"
	"strings"

	"talenthui-go-backend/pkg/entity/model"
	"talenthui-go-backend/pkg/util/normalize"
)

// identityKey returns the first resolvable key for a record in precedence
// order, prefixed by key type so values of different fields never collide.
func identityKey(rec *model.CandidateRecord, precedence []IdentityKey) string {
	for _, key := range precedence {
		switch key {
		case KeyLinkedin:
			if v := normalize.NormalizeLinkedin(rec.LinkedinURL); v != "" {
				return "li:" + v
			}
		case KeyEmail:
			if v := normalize.NormalizeEmail(rec.Email); v != "" {
				return "em:" + v
			}
		case KeyFullName:
			if v := strings.ToLower(strings.TrimSpace(rec.FullName)); v != "" {
				return "nm:" + v
			}
		}
	}
	return ""
}

// existsInStore reports whether any of the record's keys, in precedence order,
// is already persisted.
func existsInStore(rec *model.CandidateRecord, existing *model.IdentitySet, precedence []IdentityKey) bool {
	if existing == nil {
		return false
	}
	for _, key := range precedence {
		switch key {
		case KeyLinkedin:
			if rec.LinkedinURL != "" && existing.HasLinkedin(rec.LinkedinURL) {
				return true
			}
		case KeyEmail:
			if rec.Email != "" && existing.HasEmail(rec.Email) {
				return true
			}
		case KeyFullName:
			if rec.FullName != "" && existing.HasFullName(rec.FullName) {
				return true
			}
		}
	}
	return false
}

// dedupe removes duplicate records within the batch and against the persisted
// key set. First occurrence of a key wins. Records with no resolvable key are
// returned separately; they are dropped and counted in removed, matching the
// legacy importers, but reported under their own skip reason.
func dedupe(
	records []*model.CandidateRecord,
	existing *model.IdentitySet,
	precedence []IdentityKey,
) (unique []*model.CandidateRecord, removed int, noKey []*model.CandidateRecord) {
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		key := identityKey(rec, precedence)
		if key == "" {
			removed++
			noKey = append(noKey, rec)
			continue
		}
		if _, ok := seen[key]; ok {
			removed++
			continue
		}
		if existsInStore(rec, existing, precedence) {
			removed++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, rec)
	}

	return unique, removed, noKey
}

// suffixUsernames appends an incrementing numeric suffix to colliding
// usernames. Runs after identity dedup, on the surviving set only.
func suffixUsernames(records []*model.CandidateRecord) {
	taken := make(map[string]struct{}, len(records))

	for _, rec := range records {
		if rec.Username == "" {
			continue
		}
		username := rec.Username
		base := username
		counter := 1
		for {
			if _, ok := taken[strings.ToLower(username)]; !ok {
				break
			}
			username = base + strconv.Itoa(counter)
			counter++
		}
		taken[strings.ToLower(username)] = struct{}{}
		rec.Username = username
	}
}
