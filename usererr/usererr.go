// Package usererr classifies errors into user-facing categories.
//
// A Discord bot's generic error-reporting path has to decide whether an error
// should be shown to the user, silently dropped, or escalated to the
// operators. Classify makes that decision from the error value alone: values
// that are already a UserError pass through unchanged, known Discord API error
// codes map to their category, errors matched by the caller's own domain
// become Custom, and everything else is Internal.
//
// The package is pure: it performs no I/O and never fails, every input maps
// to some UserError.
package usererr

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// UserError is the closed set of user-facing error classifications.
//
// All implementations are error values themselves, so application code can
// return them directly (possibly wrapped with %w) and Classify will pass them
// through unchanged.
type UserError interface {
	error
	userError()
}

// Ignore means the error needs no action at all: nothing is shown to the
// user and nothing is logged.
type Ignore struct{}

func (Ignore) Error() string { return "error is safe to ignore" }
func (Ignore) userError()    {}

// MissingPermissions means the bot lacks permissions it needs.
//
// Permissions is nil when the error came from the Discord API rather than
// Handle.CheckPermissions and WithPermissions wasn't called, in which case
// the exact missing subset is unknown.
type MissingPermissions struct {
	Permissions *int64
}

func (MissingPermissions) Error() string { return "bot is missing required permissions" }
func (MissingPermissions) userError()    {}

// Custom wraps an error from the application's own user-error domain. How it
// is rendered to the user is entirely up to the application.
type Custom struct {
	Err error
}

func (c Custom) Error() string {
	if c.Err == nil {
		return "custom user error"
	}
	return c.Err.Error()
}

func (c Custom) Unwrap() error { return c.Err }
func (Custom) userError()      {}

// Internal means the error needs operator attention; the user should only see
// a generic apology.
type Internal struct {
	Err error
}

func (i Internal) Error() string {
	if i.Err == nil {
		return "internal error"
	}
	return i.Err.Error()
}

func (i Internal) Unwrap() error { return i.Err }
func (Internal) userError()      {}

// Matcher reports whether an error belongs to the caller's own user-error
// domain. A typical implementation wraps errors.As or errors.Is over the
// application's error types.
type Matcher func(err error) bool

// Condition is a semantic condition derived from a Discord API error code.
type Condition int

const (
	// ConditionUnknownMessage means the referenced message no longer exists.
	ConditionUnknownMessage Condition = iota + 1
	// ConditionMissingAccess means the bot can't access the target resource.
	//
	// Discord returns this both when the bot is missing a permission and when
	// it can't see the target context at all, for example when it's not in
	// the target guild. There is no reliable way to tell the two apart, so it
	// is classified as MissingPermissions.
	ConditionMissingAccess
	// ConditionFailedDM means a direct message can't be delivered to the user.
	ConditionFailedDM
	// ConditionMissingPermissions means the bot lacks a specific permission.
	ConditionMissingPermissions
	// ConditionReactionBlocked means the target user blocked the bot.
	ConditionReactionBlocked
)

// codeConditions is the single source of truth mapping Discord API error
// codes to conditions; no other code switches on these numeric codes.
var codeConditions = map[int]Condition{
	discordgo.ErrCodeUnknownMessage:               ConditionUnknownMessage,
	discordgo.ErrCodeMissingAccess:                ConditionMissingAccess,
	discordgo.ErrCodeCannotSendMessagesToThisUser: ConditionFailedDM,
	discordgo.ErrCodeMissingPermissions:           ConditionMissingPermissions,
	discordgo.ErrCodeReactionBlocked:              ConditionReactionBlocked,
}

// CodeCondition returns the condition for a Discord API error code. The
// second return value is false for codes with no known condition.
func CodeCondition(code int) (Condition, bool) {
	condition, ok := codeConditions[code]
	return condition, ok
}

// Classify maps any error to its user-facing classification.
//
// The priority order is fixed: an error that is already a UserError anywhere
// in its wrap chain is returned unchanged, then a known Discord API error
// code decides, then isCustom decides, and anything left is Internal.
// isCustom may be nil.
func Classify(err error, isCustom Matcher) UserError {
	var userErr UserError
	if errors.As(err, &userErr) {
		return userErr
	}

	if code, ok := Code(err); ok {
		if condition, ok := CodeCondition(code); ok {
			switch condition {
			case ConditionUnknownMessage, ConditionFailedDM, ConditionReactionBlocked:
				return Ignore{}
			case ConditionMissingAccess, ConditionMissingPermissions:
				return MissingPermissions{}
			}
		}
	}

	if isCustom != nil && isCustom(err) {
		return Custom{Err: err}
	}

	return Internal{Err: err}
}

// WithPermissions attaches the given permissions to a MissingPermissions
// classification, overriding any previously attached set. Any other
// classification is returned unchanged.
func WithPermissions(err UserError, permissions int64) UserError {
	if _, ok := err.(MissingPermissions); ok {
		return MissingPermissions{Permissions: &permissions}
	}
	return err
}
