// Package contactform exposes the contact form as a small net/http component.
//
// Mounted under a base path it serves the HTML form (GET), accepts
// urlencoded submissions (POST), answers live validation requests
// ({base}/validate), offers a JSON API ({base}/api/contact) and publishes
// the OpenAPI description of that API ({base}/openapi.json).
//
// Every request builds a fresh contact.Form; the component keeps no state
// between requests and never persists submissions. Use WithOnSubmit to hand
// accepted submissions to the application.
package contactform
