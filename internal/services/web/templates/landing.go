package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LandingView is everything the landing page needs to render.
type LandingView struct {
	Lang       string
	Copy       Copy
	Count      int
	Goal       int
	Percentage float64
}

// Landing renders the full landing page document. Every revealable section
// carries a data-reveal attribute matching its manifest id; sections start
// hidden and the client adapter shows them as the server reveals them.
func Landing(view LandingView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title>`+
				`<link rel="stylesheet" href="/static/landing.css">`+
				`</head><body>`,
			templ.EscapeString(view.Lang),
			templ.EscapeString(view.Copy.Title),
		); err != nil {
			return err
		}
		sections := []templ.Component{
			header(view.Copy),
			hero(view.Copy),
			features(view.Copy),
			signupSection(view),
			footer(view.Copy),
		}
		for _, c := range sections {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, `<script src="/static/landing.js" defer></script></body></html>`)
		return err
	})
}

func header(c Copy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<header class="site-header">`+
				`<div class="logo reveal" data-reveal="logo">%s</div>`+
				`<p class="tagline">%s</p>`+
				`</header>`,
			templ.EscapeString(c.Title),
			templ.EscapeString(c.Tagline),
		)
		return err
	})
}

func hero(c Copy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="hero">`+
				`<h1 class="reveal" data-reveal="hero-title">%s</h1>`+
				`<p class="reveal" data-reveal="hero-copy">%s</p>`+
				`</section>`,
			templ.EscapeString(c.HeroHeadline),
			templ.EscapeString(c.HeroCopy),
		)
		return err
	})
}

func features(c Copy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<section class="features reveal" data-reveal="features"><h2>%s</h2><ul>`,
			templ.EscapeString(c.FeaturesTitle),
		); err != nil {
			return err
		}
		for _, f := range c.Features {
			if _, err := fmt.Fprintf(w,
				`<li><h3>%s</h3><p>%s</p></li>`,
				templ.EscapeString(f.Title),
				templ.EscapeString(f.Body),
			); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, `</ul></section>`)
		return err
	})
}

func signupSection(view LandingView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="signup reveal" data-reveal="signup">`+
				`<h2>%s</h2><p>%s</p>`+
				`<form id="signup-form">`+
				`<label for="signup-email">%s</label>`+
				`<input id="signup-email" type="email" name="email" placeholder="%s" required>`+
				`<button type="submit">%s</button>`+
				`</form>`+
				`<div class="progress" data-goal="%d">`+
				`<div class="progress-bar"><div class="progress-fill" id="progress-fill" style="width: %.1f%%"></div></div>`+
				`<p><span id="progress-count">%d</span> / %d %s</p>`+
				`</div>`+
				`</section>`,
			templ.EscapeString(view.Copy.SignupTitle),
			templ.EscapeString(view.Copy.SignupCopy),
			templ.EscapeString(view.Copy.EmailLabel),
			templ.EscapeString(view.Copy.EmailPlacehold),
			templ.EscapeString(view.Copy.SubmitLabel),
			view.Goal,
			view.Percentage,
			view.Count,
			view.Goal,
			templ.EscapeString(view.Copy.ProgressLabel),
		)
		return err
	})
}

func footer(c Copy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<footer class="reveal" data-reveal="page-footer"><p>%s</p></footer>`,
			templ.EscapeString(c.FooterNote),
		)
		return err
	})
}
