// Package templates renders the landing page. Components are built with
// templ and the page copy is negotiated from the Accept-Language header.
package templates

import "golang.org/x/text/language"

// Copy is the localized text of the landing page.
type Copy struct {
	Title          string
	Tagline        string
	HeroHeadline   string
	HeroCopy       string
	FeaturesTitle  string
	Features       []Feature
	SignupTitle    string
	SignupCopy     string
	EmailLabel     string
	EmailPlacehold string
	SubmitLabel    string
	ProgressLabel  string
	FooterNote     string
}

// Feature is one entry in the features section.
type Feature struct {
	Title string
	Body  string
}

var copyEN = Copy{
	Title:          "SoundChain",
	Tagline:        "Own the music you love",
	HeroHeadline:   "Music ownership, rewritten",
	HeroCopy:       "SoundChain lets artists release directly to listeners and lets fans hold a real stake in the tracks they champion.",
	FeaturesTitle:  "Why SoundChain",
	Features: []Feature{
		{Title: "Direct releases", Body: "Artists publish on their own terms, no label gatekeeping."},
		{Title: "Fan ownership", Body: "Early supporters share in a track's success."},
		{Title: "Transparent royalties", Body: "Every play and every payout is on the record."},
	},
	SignupTitle:    "Join the waitlist",
	SignupCopy:     "Be first in when we open the doors.",
	EmailLabel:     "Email address",
	EmailPlacehold: "you@example.com",
	SubmitLabel:    "Count me in",
	ProgressLabel:  "of the founding community",
	FooterNote:     "SoundChain. All rights reserved.",
}

var copyPT = Copy{
	Title:          "SoundChain",
	Tagline:        "Seja dono da música que ama",
	HeroHeadline:   "A posse da música, reescrita",
	HeroCopy:       "A SoundChain permite que artistas lancem direto para os ouvintes e que fãs tenham participação real nas faixas que apoiam.",
	FeaturesTitle:  "Por que a SoundChain",
	Features: []Feature{
		{Title: "Lançamentos diretos", Body: "Artistas publicam nos próprios termos, sem intermediários."},
		{Title: "Posse dos fãs", Body: "Quem apoia cedo participa do sucesso da faixa."},
		{Title: "Royalties transparentes", Body: "Cada reprodução e cada pagamento ficam registrados."},
	},
	SignupTitle:    "Entre na lista de espera",
	SignupCopy:     "Seja a primeira pessoa a entrar quando abrirmos as portas.",
	EmailLabel:     "Endereço de email",
	EmailPlacehold: "voce@exemplo.com",
	SubmitLabel:    "Quero participar",
	ProgressLabel:  "da comunidade fundadora",
	FooterNote:     "SoundChain. Todos os direitos reservados.",
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Portuguese,
})

// CopyFor negotiates the page copy for an Accept-Language header value and
// returns it with the matched BCP 47 tag for the html lang attribute.
func CopyFor(acceptLanguage string) (Copy, string) {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if base.String() == "pt" {
		return copyPT, "pt"
	}
	return copyEN, "en"
}
