package constants

import "time"

// Discord message limits
const (
	// MaxMessageContentLength is Discord's message character limit
	MaxMessageContentLength = 2000
)

// Token masking
const (
	// MinTokenLengthForMasking is the minimum token length to apply masking
	MinTokenLengthForMasking = 10
	// TokenMaskPrefixLength is the length of prefix to show before masking
	TokenMaskPrefixLength = 7
	// TokenMaskSuffixLength is the length of suffix to show after masking
	TokenMaskSuffixLength = 4
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxBackups is the default number of rotated log files to keep
	DefaultLogMaxBackups = 5
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)

// Webhook log sink
const (
	// LoggingWebhookName is the name of the webhook created for error logging
	LoggingWebhookName = "Bot Error Logger"
	// WebhookLogFilename is the attachment name used when a log entry exceeds
	// the message character limit
	WebhookLogFilename = "error_message.txt"
	// WebhookLogMinInterval is the minimum interval between webhook log messages
	WebhookLogMinInterval = time.Second
	// WebhookLogBurst is the number of webhook log messages allowed in a burst
	WebhookLogBurst = 5
)
