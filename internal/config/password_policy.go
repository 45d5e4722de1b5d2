// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// PasswordPolicy is applied when accounts are created from the command line.
// The login form only checks MinLength; the remaining rules keep obviously
// weak passwords out of the user store in the first place.
type PasswordPolicy struct {
	MinLength             int
	ForbidCommonPasswords bool
	ForbidEmailSimilarity bool
	MaxConsecutiveRepeats int
}

// DefaultPasswordPolicy matches the login form minimum of 6 characters.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:             6,
		ForbidCommonPasswords: true,
		ForbidEmailSimilarity: true,
		MaxConsecutiveRepeats: 4,
	}
}

// Validate returns every violated rule, or nil.
func (p PasswordPolicy) Validate(password, email string) []string {
	var problems []string

	if n := utf8.RuneCountInString(password); n < p.MinLength {
		problems = append(problems,
			fmt.Sprintf("password must be at least %d characters (got %d)", p.MinLength, n))
	}
	if p.MaxConsecutiveRepeats > 0 && maxConsecutiveRepeats(password) > p.MaxConsecutiveRepeats {
		problems = append(problems,
			fmt.Sprintf("password cannot repeat a character more than %d times in a row", p.MaxConsecutiveRepeats))
	}
	if p.ForbidCommonPasswords && commonPasswords[strings.ToLower(password)] {
		problems = append(problems, "password is too common and easily guessable")
	}
	if p.ForbidEmailSimilarity && email != "" && similarToEmail(password, email) {
		problems = append(problems, "password is too similar to the email address")
	}
	return problems
}

// ValidateWithError joins Validate's problems into one error.
func (p PasswordPolicy) ValidateWithError(password, email string) error {
	if problems := p.Validate(password, email); len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

var commonPasswords = map[string]bool{
	"123456": true, "1234567": true, "12345678": true, "123456789": true,
	"password": true, "password1": true, "qwerty": true, "abc123": true,
	"111111": true, "letmein": true, "welcome": true, "monkey": true,
	"dragon": true, "iloveyou": true, "sunshine": true, "admin123": true,
	"contraseña": true, "contrasena": true, "producto": true,
}

func maxConsecutiveRepeats(s string) int {
	longest, run := 0, 0
	var last rune
	for i, r := range []rune(s) {
		if i > 0 && r == last {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		last = r
	}
	return longest
}

// similarToEmail compares against the local part of the address.
func similarToEmail(password, email string) bool {
	local := strings.ToLower(email)
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}
	if len(local) < 3 {
		return false
	}
	return strings.Contains(strings.ToLower(password), local)
}
