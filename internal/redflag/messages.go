package redflag

import (
	"fmt"
)

// Lang is a display language for flag messages
type Lang string

const (
	LangFR Lang = "fr"
	LangEN Lang = "en"
)

// SupportedLangs lists the languages Message can render
var SupportedLangs = []Lang{LangFR, LangEN}

// ParseLang returns the matching language, falling back to French
func ParseLang(s string) Lang {
	if Lang(s) == LangEN {
		return LangEN
	}
	return LangFR
}

// Message renders a flag in the given language
func Message(f Flag, lang Lang) string {
	p := f.Params
	en := lang == LangEN

	switch f.Category {
	case CategoryBudgetMismatch:
		if en {
			return fmt.Sprintf("Client budget ($%.2f) is below %.0f%% of the quoted price ($%.2f)", p["budget"], p["ratio"]*100, p["price"])
		}
		return fmt.Sprintf("Le budget du client (%.2f $) est inférieur à %.0f %% du prix soumis (%.2f $)", p["budget"], p["ratio"]*100, p["price"])
	case CategoryGeographic:
		if en {
			return "Job site is more than 60 km from head office"
		}
		return "Chantier situé à plus de 60 km du siège social"
	case CategoryMaterialRisk:
		if en {
			return "Imported materials: lead time of 6 weeks or more"
		}
		return "Matériaux importés : délai de livraison de 6 semaines ou plus"
	case CategoryCrewAvailability:
		if en {
			return "Multi-day job during peak season, crew availability is limited"
		}
		return "Chantier de plusieurs jours en haute saison, disponibilité des équipes limitée"
	case CategoryLowMargin:
		if en {
			return fmt.Sprintf("Margin of %.1f%% is below the %.0f%% minimum", p["margin"]*100, p["minimum"]*100)
		}
		return fmt.Sprintf("Marge de %.1f %% sous le minimum de %.0f %%", p["margin"]*100, p["minimum"]*100)
	case CategoryLowPricePerArea:
		if en {
			return fmt.Sprintf("Price of $%.2f/sqft is below the $%.2f/sqft floor", p["price_per_sqft"], p["floor"])
		}
		return fmt.Sprintf("Prix de %.2f $/pi² sous le seuil de %.2f $/pi²", p["price_per_sqft"], p["floor"])
	case CategoryMissingClientInfo:
		if en {
			return "Client name or email is missing"
		}
		return "Nom ou courriel du client manquant"
	}
	return string(f.Category)
}

// Messages renders a flag in each requested language
func Messages(f Flag, langs ...Lang) map[Lang]string {
	if len(langs) == 0 {
		langs = SupportedLangs
	}
	out := make(map[Lang]string, len(langs))
	for _, l := range langs {
		out[l] = Message(f, l)
	}
	return out
}
