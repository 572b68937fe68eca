package stage

// Error represents a stage error collected in keep-going mode.
type Error struct {
	Stage   string `json:"stage"`
	Locator string `json:"locator,omitempty"`
	Message string `json:"message"`
}

// DiscoveryMeta holds discovery options.
type DiscoveryMeta struct {
	Root        string `json:"root,omitempty"`
	NoGitignore bool   `json:"noGitignore,omitempty"`
}

// ScenarioMeta is a loaded scenario together with the file it came from.
type ScenarioMeta struct {
	Locator   string `json:"locator"`
	Name      string `json:"name"`
	Action    string `json:"action"`
	Seed      int    `json:"seed,omitempty"`
	Start     string `json:"start,omitempty"`
	Decrement string `json:"decrement,omitempty"`
	Code      int    `json:"code,omitempty"`
	Number    int    `json:"number,omitempty"`
}

// ErrorsMeta selects the error handling mode.
type ErrorsMeta struct {
	Mode        string `json:"mode,omitempty"`
	EmbedErrors bool   `json:"embedErrors,omitempty"`
}

// LuaMeta holds inline scripts.
type LuaMeta struct {
	FilterInline string `json:"filterInline,omitempty"`
	MapInline    string `json:"mapInline,omitempty"`
	ReduceInline string `json:"reduceInline,omitempty"`
}

// LuaSandboxLibsMeta lists the Lua libraries opened in the sandbox.
type LuaSandboxLibsMeta struct {
	Base   bool `json:"base"`
	Table  bool `json:"table"`
	String bool `json:"string"`
	Math   bool `json:"math"`
}

// LuaSandboxMeta holds sandbox limits. Negative values keep the defaults.
type LuaSandboxMeta struct {
	TimeoutMs           int                `json:"timeoutMs"`
	InstructionLimit    int                `json:"instructionLimit"`
	MemoryLimitBytes    int                `json:"memoryLimitBytes"`
	Libs                LuaSandboxLibsMeta `json:"libs"`
	DeterministicRandom bool               `json:"deterministicRandom"`
}

// OutputMeta holds output options.
type OutputMeta struct {
	Format string `json:"format,omitempty"`
	Pretty bool   `json:"pretty,omitempty"`
	Out    string `json:"out,omitempty"`
}

// Meta holds optional metadata with deterministic JSON field order.
type Meta struct {
	ContractVersion string          `json:"contractVersion,omitempty"`
	Stage           string          `json:"stage,omitempty"`
	ConfigPath      string          `json:"configPath,omitempty"`
	ConfigFiles     []string        `json:"configFiles,omitempty"`
	Discovery       *DiscoveryMeta  `json:"discovery,omitempty"`
	MaxSteps        int             `json:"maxSteps,omitempty"`
	Scenarios       []ScenarioMeta  `json:"scenarios,omitempty"`
	Errors          *ErrorsMeta     `json:"errors,omitempty"`
	Lua             *LuaMeta        `json:"lua,omitempty"`
	LuaSandbox      *LuaSandboxMeta `json:"luaSandbox,omitempty"`
	Output          *OutputMeta     `json:"output,omitempty"`
	Reduced         any             `json:"reduced,omitempty"`
}

// Envelope is the JSON-serializable contract between stages.
// Field order is stable to keep JSON deterministic in tests.
type Envelope struct {
	Records []Record `json:"records"`
	Meta    *Meta    `json:"meta,omitempty"`
	Errors  []Error  `json:"errors,omitempty"`
}
