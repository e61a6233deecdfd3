package views

// Theme holds the CSS classes the components use. Pages are styled with the
// Tailwind play CDN, so tokens are utility class lists.
type Theme struct {
	Page         string
	Container    string
	Heading      string
	Subheading   string
	Muted        string
	Error        string
	Card         string
	CardSelected string
	Button       string
	ButtonAccent string
	ButtonGhost  string
	ButtonDanger string
	Badge        string
	BadgeSuccess string
	Toggle       string
	ToggleActive string
	Table        string
	Input        string
	Modal        string
	ModalPanel   string
}

// DefaultTheme is used unless a page is given another one.
var DefaultTheme = Theme{
	Page:         "min-h-screen bg-gray-50 text-gray-900",
	Container:    "mx-auto max-w-5xl px-4 py-10",
	Heading:      "text-2xl font-bold mb-2",
	Subheading:   "text-lg font-semibold mb-3",
	Muted:        "text-gray-600",
	Error:        "text-red-600",
	Card:         "rounded-xl shadow-lg p-6 flex flex-col h-full bg-white border-2 border-gray-200",
	CardSelected: "rounded-xl shadow-lg p-6 flex flex-col h-full bg-blue-50 border-2 border-blue-500 ring-2 ring-blue-200",
	Button:       "w-full py-3 px-4 rounded-lg font-medium bg-gray-900 text-white hover:bg-gray-800",
	ButtonAccent: "w-full py-3 px-4 rounded-lg font-medium bg-blue-600 text-white hover:bg-blue-700",
	ButtonGhost:  "py-2 px-4 rounded-lg border border-gray-300 text-gray-700 hover:bg-gray-100",
	ButtonDanger: "py-2 px-4 rounded-lg bg-red-600 text-white hover:bg-red-700",
	Badge:        "ml-2 text-xs bg-green-100 text-green-800 px-2 py-1 rounded-full",
	BadgeSuccess: "text-sm text-green-600 font-medium mt-2",
	Toggle:       "px-6 py-2 rounded-md font-medium text-gray-600 hover:text-gray-900",
	ToggleActive: "px-6 py-2 rounded-md font-medium bg-white text-gray-900 shadow-sm",
	Table:        "min-w-full divide-y divide-gray-200 bg-white rounded-lg shadow",
	Input:        "rounded border border-gray-300 px-3 py-2",
	Modal:        "fixed inset-0 z-50 flex items-center justify-center bg-black/40",
	ModalPanel:   "bg-white rounded-lg shadow-xl max-w-sm w-full p-6",
}
