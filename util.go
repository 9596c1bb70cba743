package sparkle

import "github.com/laralove143/sparkle-convenience/pkg/constants"

// maskToken masks a bot token for logging
func maskToken(token string) string {
	if len(token) <= constants.MinTokenLengthForMasking {
		return "***"
	}
	return token[:constants.TokenMaskPrefixLength] + "***" + token[len(token)-constants.TokenMaskSuffixLength:]
}
