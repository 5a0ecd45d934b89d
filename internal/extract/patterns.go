package extract

import "regexp"

// Recognizer rules, applied in fixed priority order. Module codes are an
// alphabetic prefix plus exactly four digits; registration numbers use the
// same prefix shape but a longer digit run, which is what keeps the two
// from colliding.
var (
	// "Registration No: IT20123456", "Registration Number IT20123456", ...
	regLabelPattern = regexp.MustCompile(`(?i)registration\s*(?:no\.?|number)?\s*[:#]?\s*([A-Za-z]{2,4}\d{6,10})\b`)

	// bare registration token anywhere in the body
	regTokenPattern = regexp.MustCompile(`\b[A-Za-z]{2,4}\d{6,10}\b`)

	// module code: two to four letters followed by four digits
	moduleCodePattern = regexp.MustCompile(`^[A-Za-z]{2,4}\d{4}$`)

	// grade token: letter grade with optional qualifier, or a numeric score
	gradeTokenPattern = regexp.MustCompile(`^[A-Ea-e][+-]?$|^[Ff]$|^[0-9]{1,3}(?:\.[0-9]+)?$`)
)
