package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"machineshop/internal/model"
)

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const placeholderDomain = "example.com"

func normalizeEmail(email string) string {
	return model.Fold(strings.TrimSpace(email))
}

func validMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// placeholderEmail derives a stable address for clients created during order
// placement without an email. The mobile number is part of the local part, so
// two clients with the same name but different mobiles never share it.
func placeholderEmail(name, mobile string) string {
	local := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '@' {
			return -1
		}
		return r
	}, model.Fold(name))
	if local == "" {
		return mobile + "@" + placeholderDomain
	}
	return local + "." + mobile + "@" + placeholderDomain
}

// likePattern builds a substring pattern over folded text for LIKE ... ESCAPE '\'.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(model.Fold(s)) + "%"
}
