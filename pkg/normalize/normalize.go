// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalizes user-supplied names before they are stored
// or sent to an external API.
//
// # Usage
//
// Summoner names are looked up by the exact string Riot knows. Korean names
// typed on different keyboards arrive in NFC or NFD form, so every name is
// composed to NFC first.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Name composes s to NFC and collapses inner whitespace runs to one space.
func Name(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// SummonerName composes s to NFC and removes every whitespace rune.
// Riot treats "Hide on bush" and "Hideonbush" as the same summoner.
func SummonerName(s string) string {
	composed := norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, composed)
}
