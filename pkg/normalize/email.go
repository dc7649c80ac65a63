// Package normalize centraliza la canonicalización de identificadores de cuenta.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Email recorta espacios y pasa el email a minúsculas. El email es la clave
// única de la cuenta y se compara sin distinguir mayúsculas.
func Email(email string) string {
	// Un Caser guarda estado: se crea uno por llamada.
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// Subject devuelve el sujeto de auditoría: el email normalizado o "Anonymous".
func Subject(email string) string {
	if e := Email(email); e != "" && !strings.EqualFold(e, "anonymous") {
		return e
	}
	return "Anonymous"
}
