package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldAccount   = "account"
	FieldRange     = "range"
	FieldRows      = "rows"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldRecipient = "recipient"
	FieldPort      = "port"
	FieldSubject   = "subject"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentSheets  = "sheets"
	ComponentBuilder = "summary-builder"
	ComponentReport  = "report"
	ComponentMail    = "mail"
	ComponentPreview = "preview"
	ComponentHistory = "history"
	ComponentScrape  = "horoscope"
)
