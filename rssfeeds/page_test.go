package rssfeeds

import (
	"strings"
	"testing"

	"ncstfeed/types"
)

const loginWall = `<html><head><title>Log into Facebook | Facebook</title></head><body>
<div id="login"><form action="/login" method="post">
<input name="email" type="text"><input name="pass" type="password"><button>Log In</button>
</form><p>You must log in to continue.</p></div></body></html>`

const readableArticle = `<html><head><title>Enrollment for the second semester is now open</title></head><body>
<div id="header"><a href="/">Home</a> <a href="/news">News</a></div>
<div id="main"><div class="story">
<h1>Enrollment for the second semester is now open</h1>
<p>Enrollment for the second semester of the school year is now open for all continuing students, transferees and returning students, and the registrar will accept walk-in applicants every weekday from eight in the morning until five in the afternoon.</p>
<p>Students are reminded to settle any outstanding balance with the accounting office before proceeding to the registrar, and to bring a printed copy of their grades, a valid school identification card and two recent photographs.</p>
<p>Online enrollment through the student portal remains available for students who have already been cleared by their department, and payments made through partner banks will be posted within two working days.</p>
</div></div>
<div id="footer">Copyright</div></body></html>`

func htmlPayload(url, body string, readable bool) types.RawPayload {
	p := payloadOf(types.KindHTML, url, body)
	p.Source.Readability = readable
	return p
}

func TestNormalizeHTMLLoginWallIsEmpty(t *testing.T) {
	n := NewNormalizer(5)
	for _, readable := range []bool{false, true} {
		p := htmlPayload("https://www.facebook.com/NCST.OfficialPage", loginWall, readable)

		got, err := n.Normalize(p)
		if err != nil {
			t.Fatalf("readability=%v: Normalize error: %v", readable, err)
		}
		if len(got) != 0 {
			t.Errorf("readability=%v: got %d announcements from a login page: %+v", readable, len(got), got)
		}
		if err := n.Probe(p); !IsEmpty(err) {
			t.Errorf("readability=%v: Probe = %v; want empty error", readable, err)
		}
	}
}

func TestNormalizeHTMLReadablePage(t *testing.T) {
	n := NewNormalizer(5)

	got, err := n.Normalize(htmlPayload("https://school.example/news/enrollment", readableArticle, true))
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d announcements; want 1", len(got))
	}
	a := got[0]
	if !strings.Contains(a.Title, "Enrollment") {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Link != "https://school.example/news/enrollment" {
		t.Errorf("Link = %q", a.Link)
	}
	if a.Text == "" || a.GUID == "" {
		t.Errorf("Text = %q GUID = %q", a.Text, a.GUID)
	}

	// Without the opt-in the same page has no article containers
	err = n.Probe(htmlPayload("https://school.example/news/enrollment", readableArticle, false))
	if !IsEmpty(err) {
		t.Errorf("Probe without page extraction = %v; want empty error", err)
	}
}

func TestNormalizeHTMLNestedContainers(t *testing.T) {
	body := `<html><body>
<article><h2>Outer</h2><article><h3>Inner</h3></article></article>
<article><h2>Next</h2></article>
</body></html>`
	got, err := NewNormalizer(5).Normalize(payloadOf(types.KindHTML, "http://page", body))
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	var titles []string
	for _, a := range got {
		titles = append(titles, a.Title)
	}
	if strings.Join(titles, ",") != "Outer,Next" {
		t.Errorf("titles = %v; want [Outer Next]", titles)
	}
}
