package goquery_test

import (
	"testing"
	"time"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/goquery"
	"github.com/dalil-app/dalil/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const servicePage = `<!DOCTYPE html>
<html>
<head>
<title>Portal</title>
<meta property="og:title" content="Tourist Visa Application">
<meta name="description" content="Apply for a short stay tourist visa.">
</head>
<body>
<nav aria-label="breadcrumb"><ol>
<li>Home</li><li>Visa Services</li><li>Tourist Visa Application</li>
</ol></nav>
<div class="authority-name" data-code="FED-ICP">Federal Authority for Identity and Citizenship</div>
<h1>Tourist Visa Application</h1>
<h2>Eligibility</h2>
<ul><li>Valid passport</li><li>Return ticket</li></ul>
<h2>Required Documents</h2>
<ul><li>Passport copy</li><li>Photograph</li></ul>
<h2>How to Apply</h2>
<ol><li>Create an account</li><li>Submit the form</li></ol>
<h2>Fees</h2>
<ul><li>Application fee: AED 300</li><li>Express processing: AED 100.50</li></ul>
<h2>Processing Time</h2>
<p>2 working days</p>
<a href="mailto:support@example.gov.ae">Email us</a>
<a href="tel:+97180012345">Call</a>
<time datetime="2025-06-15">15 June 2025</time>
</body>
</html>`

func TestExtractor_ExtractRecord(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	record, err := e.ExtractRecord(servicePage, "https://example.gov.ae/visa")
	require.NoError(t, err)

	assert.Equal(t, "Tourist Visa Application", record.Title)
	assert.Equal(t, "Apply for a short stay tourist visa.", record.Description)
	assert.Equal(t, "https://example.gov.ae/visa", record.URL)
	assert.Equal(t, "Federal Authority for Identity and Citizenship", record.Authority.Name)
	assert.Equal(t, "FED-ICP", record.Authority.Code)
	assert.Equal(t, "Visa Services", record.Category)
	assert.Equal(t, []string{"Valid passport", "Return ticket"}, record.Eligibility)
	assert.Equal(t, []string{"Passport copy", "Photograph"}, record.Documents)
	assert.Equal(t, []string{"Create an account", "Submit the form"}, record.Steps)
	assert.Equal(t, "2 working days", record.ProcessingTime)

	require.Len(t, record.Fees, 2)
	assert.Equal(t, 300.0, record.Fees[0].Amount)
	assert.Equal(t, "AED", record.Fees[0].Currency)
	assert.Equal(t, 100.50, record.Fees[1].Amount)

	require.NotNil(t, record.Contact)
	assert.Equal(t, "support@example.gov.ae", record.Contact.Email)
	assert.Equal(t, "+97180012345", record.Contact.Phone)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), record.LastUpdated)
}

func TestExtractor_ExtractRecord_Arabic(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>تجديد بطاقة الهوية</title></head><body>
<h2>الشروط</h2>
<ul><li>الإقامة سارية</li></ul>
<h2>الرسوم</h2>
<ul><li>رسوم الخدمة: درهم 150</li></ul>
</body></html>`

	e := goquery.NewExtractor()
	record, err := e.ExtractRecord(page, "https://example.gov.ae/id")
	require.NoError(t, err)

	assert.Equal(t, "تجديد بطاقة الهوية", record.Title)
	assert.Equal(t, []string{"الإقامة سارية"}, record.Eligibility)
	require.Len(t, record.Fees, 1)
	assert.Equal(t, 150.0, record.Fees[0].Amount)
	assert.Equal(t, "AED", record.Fees[0].Currency)
}

func TestExtractor_ExtractRecord_MissingFieldsLeftZero(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	record, err := e.ExtractRecord("<html><body><p>nothing here</p></body></html>", "https://example.gov.ae/x")
	require.NoError(t, err)

	assert.Empty(t, record.Title)
	assert.Empty(t, record.Description)
	assert.Empty(t, record.Authority.Name)
	assert.Nil(t, record.Eligibility)
	assert.Nil(t, record.Fees)
	assert.Nil(t, record.Contact)
	assert.True(t, record.LastUpdated.IsZero())
}

func TestExtractor_ExtractRecord_Fallback(t *testing.T) {
	t.Parallel()

	fallback := &mock.ContentExtractor{
		ExtractFn: func(html string) (*dalil.ContentResult, error) {
			return &dalil.ContentResult{
				Title: "Recovered Title",
				Text:  "Recovered body text.",
			}, nil
		},
	}

	e := goquery.NewExtractor(goquery.WithFallback(fallback))
	record, err := e.ExtractRecord("<html><body><div>unstructured</div></body></html>", "https://example.gov.ae/y")
	require.NoError(t, err)

	assert.Equal(t, "Recovered Title", record.Title)
	assert.Equal(t, "Recovered body text.", record.Description)
}

func TestExtractor_ExtractRecord_Converter(t *testing.T) {
	t.Parallel()

	conv := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return "**converted**", nil
		},
	}

	page := `<html><body>
<div class="service-description"><strong>bold text</strong></div>
</body></html>`

	e := goquery.NewExtractor(goquery.WithConverter(conv))
	record, err := e.ExtractRecord(page, "https://example.gov.ae/z")
	require.NoError(t, err)

	assert.Equal(t, "**converted**", record.Description)
}
