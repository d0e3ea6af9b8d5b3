package errors

// template defines a registered error type.
type template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]template{
	// Config errors (E100-E119)
	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file could not be parsed as JSON.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid inspector port",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "Supported levels are debug, info, warn and error.",
	},

	// CLI errors (E120-E139)
	"E120": {
		Category: CategoryCLI,
		Message:  "Command failed",
	},
	"E121": {
		Category: CategoryCLI,
		Message:  "Terminal UI failed",
	},

	// Inspector errors (E140-E159)
	"E140": {
		Category: CategoryInspect,
		Message:  "Inspector server failed",
	},
	"E141": {
		Category: CategoryInspect,
		Message:  "Store could not be exposed",
	},
}
