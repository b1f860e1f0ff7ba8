// Package assets provides the page templates and stylesheet for generated blog posts.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. A site can override the
// post layout or the in-article ad unit by dropping a file with the same name in
// its asset directory, while everything else keeps the embedded default.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Stylesheet copied next to the posts
//	└── templates/
//	    ├── post.html            # Full page layout (html/template)
//	    └── in-article.html      # Ad unit spliced into the body
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
