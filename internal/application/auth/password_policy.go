package auth

import (
	"unicode/utf8"

	"github.com/jhoicas/Account-api/internal/domain"
)

// MinPasswordLength longitud mínima en caracteres.
const MinPasswordLength = 12

// breachedPasswords contraseñas conocidas en filtraciones públicas.
var breachedPasswords = map[string]struct{}{
	"PasswordForJanuary":   {},
	"PasswordForFebruary":  {},
	"PasswordForMarch":     {},
	"PasswordForApril":     {},
	"PasswordForMay":       {},
	"PasswordForJune":      {},
	"PasswordForJuly":      {},
	"PasswordForAugust":    {},
	"PasswordForSeptember": {},
	"PasswordForOctober":   {},
	"PasswordForNovember":  {},
	"PasswordForDecember":  {},
}

// CheckPassword aplica la política de contraseñas.
func CheckPassword(plain string) error {
	if utf8.RuneCountInString(plain) < MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if _, ok := breachedPasswords[plain]; ok {
		return domain.ErrBreachedPassword
	}
	return nil
}
