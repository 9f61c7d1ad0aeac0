package services

import (
	"strings"

	"fakenews-detector/models"
)

const (
	minHumanWords = 5

	botReason   = "Very short text or excessive capitalization."
	humanReason = "Natural sentence structure."
)

// DetectBot flags raw (uncleaned) text as likely bot-generated when it has
// fewer than five whitespace-separated tokens or is entirely upper-case.
// Strings without letters count as upper-case.
func DetectBot(raw string) models.BotVerdict {
	v := models.BotVerdict{
		ShortText: len(strings.Fields(raw)) < minHumanWords,
		AllCaps:   raw == strings.ToUpper(raw),
	}
	v.LikelyBot = v.ShortText || v.AllCaps
	if v.LikelyBot {
		v.Reason = botReason
	} else {
		v.Reason = humanReason
	}
	return v
}
