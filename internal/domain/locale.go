package domain

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale holds the user-facing wording and date layouts used when describing an entitlement.
type Locale struct {
	Tag            language.Tag
	DateLayout     string
	DateTimeLayout string
	Placeholder    string

	expiredOne  string
	expiredMany string
	dueToday    string
	dueTomorrow string
	dueIn       string
	remaining   string

	soonTitle       string
	soonMessage     string
	tomorrowTitle   string
	tomorrowMessage string
	expiredTitle    string
	expiredMessage  string
}

var LocaleEnglish = Locale{
	Tag:            language.English,
	DateLayout:     "02/01/2006",
	DateTimeLayout: "02/01/2006 15:04:05",
	Placeholder:    "–",

	expiredOne:  "Expired 1 day ago",
	expiredMany: "Expired %d days ago",
	dueToday:    "Expires today",
	dueTomorrow: "Expires tomorrow",
	dueIn:       "Expires in %d days",
	remaining:   "%d days remaining",

	soonTitle:       "Your plan is about to expire",
	soonMessage:     "%d days left until your plan expires. Renew now to avoid interruptions.",
	tomorrowTitle:   "Your plan expires tomorrow",
	tomorrowMessage: "Your plan expires tomorrow, renew now.",
	expiredTitle:    "Plan expired",
	expiredMessage:  "Your plan has expired, renew now to keep your extensions from being removed!",
}

var LocalePortuguese = Locale{
	Tag:            language.BrazilianPortuguese,
	DateLayout:     "02/01/2006",
	DateTimeLayout: "02/01/2006 15:04:05",
	Placeholder:    "–",

	expiredOne:  "Vencido há 1 dia",
	expiredMany: "Vencido há %d dias",
	dueToday:    "Vence hoje",
	dueTomorrow: "Vence amanhã",
	dueIn:       "Vence em %d dias",
	remaining:   "%d dias restantes",

	soonTitle:       "Seu plano está próximo do vencimento",
	soonMessage:     "Faltam %d dias para o vencimento do seu plano. Renove agora para evitar interrupções.",
	tomorrowTitle:   "Seu plano vence amanhã",
	tomorrowMessage: "Seu plano vence amanhã, renove agora.",
	expiredTitle:    "Plano vencido",
	expiredMessage:  "Seu plano está vencido, renove agora e evite que seus ramais sejam excluídos!",
}

var (
	supportedLocales = []Locale{LocaleEnglish, LocalePortuguese}
	localeMatcher    = language.NewMatcher([]language.Tag{LocaleEnglish.Tag, LocalePortuguese.Tag})
)

// LocaleFor picks the closest supported locale for a BCP 47 tag such as "pt-BR" or "en".
// Unknown or malformed tags resolve to English.
func LocaleFor(tag string) Locale {
	_, index := language.MatchStrings(localeMatcher, tag)
	if index < 0 || index >= len(supportedLocales) {
		return LocaleEnglish
	}

	return supportedLocales[index]
}

func (l Locale) orDefault() Locale {
	if l.DateLayout == "" || l.dueToday == "" {
		return LocaleEnglish
	}

	return l
}

func (l Locale) statusText(status ExpirationStatus, daysUntil int) string {
	switch status {
	case StatusExpired:
		days := -daysUntil
		if days < 0 {
			days = -days
		}
		if days == 1 {
			return l.expiredOne
		}
		return fmt.Sprintf(l.expiredMany, days)
	case StatusWarning:
		switch daysUntil {
		case 0:
			return l.dueToday
		case 1:
			return l.dueTomorrow
		default:
			return fmt.Sprintf(l.dueIn, daysUntil)
		}
	case StatusActive:
		return fmt.Sprintf(l.remaining, daysUntil)
	default:
		return l.Placeholder
	}
}
