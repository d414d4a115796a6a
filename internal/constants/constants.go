package constants

// SyntaxTheme is the default Chroma theme used to colour diff previews.
//
// Dark themes that read well in terminals include monokai, dracula, nord,
// gruvbox, onedark, github-dark and catppuccin-mocha; light ones include
// github, solarized-light and catppuccin-latte.
const SyntaxTheme = "github-dark"

// AppName prefixes the data directory and the CLI name.
const AppName = "tsedit"
