package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Input patterns for the single-line intake steps
var (
	// DATE TIME GUESTS, e.g. "2025-04-20 19:30 4"
	bookingPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{1,2}:\d{2})\s+(\d+)$`)

	// RATING COMMENT, e.g. "5 The food was amazing!"
	feedbackPattern = regexp.MustCompile(`^([1-5])\s+(\S.*)$`)
)

// Keyword sets recognized by the dispatcher
var greetingWords = map[string]bool{
	"hi":    true,
	"hello": true,
	"hey":   true,
	"start": true,
	"menu":  true,
	"order": true,
}

var flowWords = map[string]FlowType{
	"order":     FlowOrder,
	"book":      FlowBooking,
	"feedback":  FlowFeedback,
	"complaint": FlowComplaint,
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// isGreeting reports whether the message is a bare greeting/reset word
func isGreeting(text string) bool {
	return greetingWords[normalize(text)]
}

// flowKeyword maps a bare flow word to its flow type
func flowKeyword(text string) (FlowType, bool) {
	flow, ok := flowWords[normalize(text)]
	return flow, ok
}

func isYes(text string) bool {
	n := normalize(text)
	return n == "yes" || n == "y"
}

func isNo(text string) bool {
	n := normalize(text)
	return n == "no" || n == "n"
}

func isConfirm(text string) bool {
	n := normalize(text)
	return n == "confirm" || n == "yes"
}

func isCancel(text string) bool {
	n := normalize(text)
	return n == "cancel" || n == "no"
}

// parseIndex parses a 1-based menu selection and checks it against the
// number of choices on offer.
func parseIndex(text string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n, true
}

// parseQuantity parses a strictly positive item count
func parseQuantity(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// parseBookingDetails matches the combined "DATE TIME GUESTS" line and
// validates that the date and time denote a real calendar moment.
func parseBookingDetails(text string) (date, timeOfDay string, guests int, ok bool) {
	m := bookingPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", 0, false
	}

	if _, err := time.Parse("2006-01-02", m[1]); err != nil {
		return "", "", 0, false
	}

	// H:MM and HH:MM are both accepted, so check the clock fields
	// numerically instead of through time.Parse.
	clock := strings.SplitN(m[2], ":", 2)
	hour, _ := strconv.Atoi(clock[0])
	minute, _ := strconv.Atoi(clock[1])
	if hour > 23 || minute > 59 {
		return "", "", 0, false
	}

	guests, err := strconv.Atoi(m[3])
	if err != nil || guests < 1 {
		return "", "", 0, false
	}

	return m[1], m[2], guests, true
}

// parseFeedback matches the combined "RATING COMMENT" line
func parseFeedback(text string) (rating int, comment string, ok bool) {
	m := feedbackPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, "", false
	}
	rating, _ = strconv.Atoi(m[1])
	comment = strings.TrimSpace(m[2])
	if comment == "" {
		return 0, "", false
	}
	return rating, comment, true
}

// nonEmpty trims free-text input and reports whether anything remains.
// Whitespace-only answers count as no answer.
func nonEmpty(text string) (string, bool) {
	t := strings.TrimSpace(text)
	return t, t != ""
}
