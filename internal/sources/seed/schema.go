package seed

// Entry is one bookmark in the seed file.
type Entry struct {
	Title       string  `yaml:"title"`
	URL         string  `yaml:"url"`
	Rating      float64 `yaml:"rating"`
	Description string  `yaml:"description"`
}

// File is the root structure of the seed YAML:
//
//	bookmarks:
//	  - title: Google
//	    url: https://www.google.com/
//	    rating: 5
//	    description: cool search engine
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}
