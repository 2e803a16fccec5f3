package navi

// By is the kind of query a Selector runs
type By int8

const (
	ID By = iota
	Name
	ClassName
	CSS
	XPath
	TagName
	LinkText
	PartialLinkText
)

// ByMap of descriptive names used in messages
var ByMap = map[By]string{
	ID:              "id",
	Name:            "name",
	ClassName:       "class",
	CSS:             "CSS selector",
	XPath:           "XPath",
	TagName:         "tag name",
	LinkText:        "link text",
	PartialLinkText: "partial link text",
}

// StrToByMap for parsing user input
var StrToByMap = map[string]By{
	"id":              ID,
	"name":            Name,
	"class":           ClassName,
	"css":             CSS,
	"xpath":           XPath,
	"tag":             TagName,
	"link":            LinkText,
	"partiallink":     PartialLinkText,
	"partial":         PartialLinkText,
	"linktext":        LinkText,
	"tagname":         TagName,
	"classname":       ClassName,
	"partiallinktext": PartialLinkText,
}

func (b By) String() string {
	if s, ok := ByMap[b]; ok {
		return s
	}
	return "unknown"
}

// Selector is a single query of a single kind
type Selector struct {
	By    By
	Query string
}

func (s *Selector) locator() {}

func (s *Selector) String() string {
	return Describe(s)
}

func ByID(query string) *Selector {
	return &Selector{By: ID, Query: query}
}

func ByName(query string) *Selector {
	return &Selector{By: Name, Query: query}
}

func ByClassName(query string) *Selector {
	return &Selector{By: ClassName, Query: query}
}

func ByCSS(query string) *Selector {
	return &Selector{By: CSS, Query: query}
}

func ByXPath(query string) *Selector {
	return &Selector{By: XPath, Query: query}
}

func ByTagName(query string) *Selector {
	return &Selector{By: TagName, Query: query}
}

func ByLinkText(query string) *Selector {
	return &Selector{By: LinkText, Query: query}
}

func ByPartialLinkText(query string) *Selector {
	return &Selector{By: PartialLinkText, Query: query}
}
