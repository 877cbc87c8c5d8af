package lang

import "github.com/phyten/codecount/internal/classify"

type style struct {
	line    []string
	block   []classify.Pair
	strings []classify.Pair
}

func pair(begin, end string) classify.Pair { return classify.Pair{Begin: begin, End: end} }

var (
	// '"' and '\"' are character literals, not string openers.
	charQuote = []classify.Pair{pair(`'"`, `'`), pair(`'\"`, `'`)}

	styleC = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: append([]classify.Pair{pair(`"`, `"`)}, charQuote...),
	}
	styleGo = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: append([]classify.Pair{pair(`"`, `"`), pair("`", "`")}, charQuote...),
	}
	styleJava = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: append([]classify.Pair{pair(`"""`, `"""`), pair(`"`, `"`)}, charQuote...),
	}
	styleJS = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: []classify.Pair{pair(`"`, `"`), pair(`'`, `'`), pair("`", "`")},
	}
	styleCSharp = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: append([]classify.Pair{pair(`"""`, `"""`), pair(`@"`, `"`), pair(`"`, `"`)}, charQuote...),
	}
	styleRust = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: append([]classify.Pair{pair(`r#"`, `"#`), pair(`"`, `"`)}, charQuote...),
	}
	styleSwift = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: []classify.Pair{pair(`"""`, `"""`), pair(`"`, `"`)},
	}
	stylePHP = style{
		line:    []string{"//", "#"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: []classify.Pair{pair(`"`, `"`), pair(`'`, `'`)},
	}
	stylePython = style{
		line:    []string{"#"},
		strings: []classify.Pair{pair(`"""`, `"""`), pair(`'''`, `'''`), pair(`"`, `"`), pair(`'`, `'`)},
	}
	styleRuby = style{
		line:    []string{"#"},
		block:   []classify.Pair{pair("=begin", "=end")},
		strings: []classify.Pair{pair(`"`, `"`), pair(`'`, `'`)},
	}
	stylePerl = style{
		line:    []string{"#"},
		block:   []classify.Pair{pair("=pod", "=cut")},
		strings: []classify.Pair{pair(`"`, `"`), pair(`'`, `'`)},
	}
	styleShell = style{
		line:    []string{"#"},
		strings: []classify.Pair{pair(`"`, `"`), pair(`'`, `'`)},
	}
	styleHash = style{
		line: []string{"#"},
	}
	styleHashQuoted = style{
		line:    []string{"#"},
		strings: []classify.Pair{pair(`"""`, `"""`), pair(`'''`, `'''`), pair(`"`, `"`), pair(`'`, `'`)},
	}
	stylePowershell = style{
		line:    []string{"#"},
		block:   []classify.Pair{pair("<#", "#>")},
		strings: []classify.Pair{pair(`@"`, `"@`), pair(`"`, `"`), pair(`'`, `'`)},
	}
	styleBatch = style{
		line: []string{"REM ", "rem ", "@REM ", "@rem ", "::"},
	}
	styleSQL = style{
		line:    []string{"--"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: []classify.Pair{pair(`'`, `'`)},
	}
	styleLua = style{
		line:    []string{"--"},
		block:   []classify.Pair{pair("--[[", "]]")},
		strings: []classify.Pair{pair("[[", "]]"), pair(`"`, `"`), pair(`'`, `'`)},
	}
	styleHaskell = style{
		line:    []string{"--"},
		block:   []classify.Pair{pair("{-", "-}")},
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	styleOCaml = style{
		block:   []classify.Pair{pair("(*", "*)")},
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	stylePascal = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("{", "}"), pair("(*", "*)")},
		strings: []classify.Pair{pair(`'`, `'`)},
	}
	styleLisp = style{
		line:    []string{";"},
		block:   []classify.Pair{pair("#|", "|#")},
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	styleClojure = style{
		line:    []string{";"},
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	styleErlang = style{
		line:    []string{"%"},
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	styleMatlab = style{
		line:  []string{"%"},
		block: []classify.Pair{pair("%{", "%}")},
	}
	styleTeX = style{
		line: []string{"%"},
	}
	styleHTML = style{
		block: []classify.Pair{pair("<!--", "-->")},
	}
	styleCSS = style{
		block:   []classify.Pair{pair("/*", "*/")},
		strings: []classify.Pair{pair(`"`, `"`), pair(`'`, `'`)},
	}
	styleSCSS = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: []classify.Pair{pair(`"`, `"`), pair(`'`, `'`)},
	}
	styleIni = style{
		line: []string{";", "#"},
	}
	styleHCL = style{
		line:    []string{"#", "//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	styleJSONC = style{
		line:    []string{"//"},
		block:   []classify.Pair{pair("/*", "*/")},
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	styleJSON = style{
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	styleJinja = style{
		block: []classify.Pair{pair("{#", "#}"), pair("<!--", "-->")},
	}
	styleHandlebars = style{
		block: []classify.Pair{pair("{{!--", "--}}"), pair("{{!", "}}"), pair("<!--", "-->")},
	}
	styleVim = style{
		line: []string{`"`},
	}
	styleFortran = style{
		line: []string{"!"},
	}
	styleVB = style{
		line:    []string{"'", "REM "},
		strings: []classify.Pair{pair(`"`, `"`)},
	}
	styleNone = style{}
)

type builtinDef struct {
	id        string
	style     style
	exts      []string
	filenames []string
	aliases   []string
}

var builtinDefs = []builtinDef{
	{id: "c", style: styleC, exts: []string{".c", ".h"}, aliases: []string{"C"}},
	{id: "cpp", style: styleC, exts: []string{".cc", ".cp", ".cpp", ".cxx", ".c++", ".hh", ".hpp", ".hxx", ".h++", ".inl", ".ino"}, aliases: []string{"C++", "c++", "Cpp"}},
	{id: "objective-c", style: styleC, exts: []string{".m"}, aliases: []string{"Objective-C", "objc"}},
	{id: "objective-cpp", style: styleC, exts: []string{".mm"}, aliases: []string{"Objective-C++"}},
	{id: "csharp", style: styleCSharp, exts: []string{".cs", ".csx", ".cake"}, aliases: []string{"C#", "c#", "cs"}},
	{id: "go", style: styleGo, exts: []string{".go"}, aliases: []string{"Go", "golang"}},
	{id: "java", style: styleJava, exts: []string{".java", ".jav"}, aliases: []string{"Java"}},
	{id: "kotlin", style: styleJava, exts: []string{".kt", ".kts"}, aliases: []string{"Kotlin"}},
	{id: "scala", style: styleJava, exts: []string{".scala", ".sc", ".sbt"}, aliases: []string{"Scala"}},
	{id: "groovy", style: styleJava, exts: []string{".groovy", ".gvy", ".gradle"}, filenames: []string{"Jenkinsfile"}, aliases: []string{"Groovy"}},
	{id: "dart", style: styleJava, exts: []string{".dart"}, aliases: []string{"Dart"}},
	{id: "swift", style: styleSwift, exts: []string{".swift"}, aliases: []string{"Swift"}},
	{id: "rust", style: styleRust, exts: []string{".rs"}, aliases: []string{"Rust"}},
	{id: "zig", style: styleC, exts: []string{".zig"}, aliases: []string{"Zig"}},
	{id: "proto", style: styleC, exts: []string{".proto"}, aliases: []string{"Protocol Buffers", "protobuf"}},
	{id: "thrift", style: styleC, exts: []string{".thrift"}},
	{id: "verilog", style: styleC, exts: []string{".v", ".vh"}, aliases: []string{"Verilog"}},
	{id: "systemverilog", style: styleC, exts: []string{".sv", ".svh"}},
	{id: "apex", style: styleC, exts: []string{".cls", ".trigger", ".apex"}},
	{id: "javascript", style: styleJS, exts: []string{".js", ".mjs", ".cjs", ".es6"}, aliases: []string{"JavaScript", "js"}},
	{id: "javascriptreact", style: styleJS, exts: []string{".jsx"}, aliases: []string{"JavaScript React", "jsx"}},
	{id: "typescript", style: styleJS, exts: []string{".ts", ".mts", ".cts"}, aliases: []string{"TypeScript", "ts"}},
	{id: "typescriptreact", style: styleJS, exts: []string{".tsx"}, aliases: []string{"TypeScript React", "tsx"}},
	{id: "coffeescript", style: style{line: []string{"#"}, block: []classify.Pair{pair("###", "###")}, strings: styleShell.strings}, exts: []string{".coffee", ".cson", ".iced"}, aliases: []string{"CoffeeScript"}},
	{id: "php", style: stylePHP, exts: []string{".php", ".php4", ".php5", ".phtml", ".ctp"}, aliases: []string{"PHP"}},
	{id: "python", style: stylePython, exts: []string{".py", ".pyw", ".pyi", ".rpy", ".gyp"}, filenames: []string{"SConstruct", "SConscript"}, aliases: []string{"Python", "py"}},
	{id: "starlark", style: stylePython, exts: []string{".bzl", ".star", ".bazel"}, filenames: []string{"BUILD", "WORKSPACE"}},
	{id: "cython", style: stylePython, exts: []string{".pyx", ".pxd", ".pxi"}},
	{id: "ruby", style: styleRuby, exts: []string{".rb", ".rbx", ".rjs", ".gemspec", ".rake", ".ru", ".erb"}, filenames: []string{"Gemfile", "Rakefile", "Podfile", "Vagrantfile", "Berksfile", "Guardfile"}, aliases: []string{"Ruby", "rb"}},
	{id: "perl", style: stylePerl, exts: []string{".pl", ".pm", ".pod", ".t", ".psgi"}, aliases: []string{"Perl"}},
	{id: "shellscript", style: styleShell, exts: []string{".sh", ".bash", ".zsh", ".ksh", ".bashrc", ".bash_profile", ".zshrc", ".ebuild"}, filenames: []string{"PKGBUILD", "gradlew"}, aliases: []string{"Shell Script", "shell", "bash", "sh", "zsh"}},
	{id: "fish", style: styleShell, exts: []string{".fish"}},
	{id: "powershell", style: stylePowershell, exts: []string{".ps1", ".psm1", ".psd1", ".pssc", ".psrc"}, aliases: []string{"PowerShell", "ps", "ps1"}},
	{id: "bat", style: styleBatch, exts: []string{".bat", ".cmd"}, aliases: []string{"Batch", "batch"}},
	{id: "sql", style: styleSQL, exts: []string{".sql", ".dsql", ".psql", ".pgsql", ".plsql"}, aliases: []string{"SQL"}},
	{id: "lua", style: styleLua, exts: []string{".lua"}, aliases: []string{"Lua"}},
	{id: "haskell", style: styleHaskell, exts: []string{".hs", ".lhs"}, aliases: []string{"Haskell"}},
	{id: "elm", style: styleHaskell, exts: []string{".elm"}},
	{id: "ocaml", style: styleOCaml, exts: []string{".ml", ".mli"}, aliases: []string{"OCaml"}},
	{id: "fsharp", style: style{line: []string{"//"}, block: []classify.Pair{pair("(*", "*)")}, strings: []classify.Pair{pair(`"""`, `"""`), pair(`"`, `"`)}}, exts: []string{".fs", ".fsi", ".fsx"}, aliases: []string{"F#"}},
	{id: "pascal", style: stylePascal, exts: []string{".pas", ".pp", ".dpr"}, aliases: []string{"Pascal", "Delphi"}},
	{id: "lisp", style: styleLisp, exts: []string{".lisp", ".lsp", ".cl", ".el"}, aliases: []string{"Common Lisp", "common-lisp"}},
	{id: "scheme", style: styleLisp, exts: []string{".scm", ".ss", ".rkt"}},
	{id: "clojure", style: styleClojure, exts: []string{".clj", ".cljs", ".cljc", ".edn"}, aliases: []string{"Clojure"}},
	{id: "erlang", style: styleErlang, exts: []string{".erl", ".hrl"}, aliases: []string{"Erlang"}},
	{id: "elixir", style: styleHashQuoted, exts: []string{".ex", ".exs"}, aliases: []string{"Elixir"}},
	{id: "julia", style: style{line: []string{"#"}, block: []classify.Pair{pair("#=", "=#")}, strings: []classify.Pair{pair(`"""`, `"""`), pair(`"`, `"`)}}, exts: []string{".jl"}, aliases: []string{"Julia"}},
	{id: "r", style: styleShell, exts: []string{".r", ".R", ".rhistory", ".rprofile"}, aliases: []string{"R"}},
	{id: "nim", style: style{line: []string{"#"}, block: []classify.Pair{pair("#[", "]#")}, strings: []classify.Pair{pair(`"""`, `"""`), pair(`"`, `"`)}}, exts: []string{".nim", ".nims"}},
	{id: "matlab", style: styleMatlab, exts: []string{".mat"}, aliases: []string{"MATLAB"}},
	{id: "latex", style: styleTeX, exts: []string{".tex", ".sty", ".cls.tex", ".bib"}, aliases: []string{"LaTeX", "TeX"}},
	{id: "fortran", style: styleFortran, exts: []string{".f90", ".f95", ".f03", ".f08"}, aliases: []string{"Fortran"}},
	{id: "vb", style: styleVB, exts: []string{".vb", ".bas", ".vbs"}, aliases: []string{"Visual Basic"}},
	{id: "vim", style: styleVim, exts: []string{".vim"}, filenames: []string{".vimrc", "_vimrc"}, aliases: []string{"Vim Script", "viml"}},
	{id: "html", style: styleHTML, exts: []string{".html", ".htm", ".shtml", ".xhtml", ".mdoc", ".jsp", ".asp", ".aspx", ".jshtm"}, aliases: []string{"HTML", "htm"}},
	{id: "xml", style: styleHTML, exts: []string{".xml", ".xsd", ".xsl", ".xslt", ".svg", ".plist", ".xaml", ".wsdl", ".csproj", ".fsproj", ".vbproj", ".props", ".targets"}, aliases: []string{"XML"}},
	{id: "vue", style: styleHTML, exts: []string{".vue"}, aliases: []string{"Vue"}},
	{id: "svelte", style: styleHTML, exts: []string{".svelte"}},
	{id: "markdown", style: styleHTML, exts: []string{".md", ".markdown", ".mdown", ".mkd", ".mdx"}, aliases: []string{"Markdown", "md"}},
	{id: "css", style: styleCSS, exts: []string{".css"}, aliases: []string{"CSS"}},
	{id: "scss", style: styleSCSS, exts: []string{".scss"}, aliases: []string{"SCSS"}},
	{id: "less", style: styleSCSS, exts: []string{".less"}, aliases: []string{"Less"}},
	{id: "stylus", style: styleSCSS, exts: []string{".styl"}},
	{id: "json", style: styleJSON, exts: []string{".json", ".webmanifest", ".har"}, filenames: []string{".babelrc", ".eslintrc.json"}, aliases: []string{"JSON"}},
	{id: "jsonc", style: styleJSONC, exts: []string{".jsonc", ".json5", ".hjson"}, filenames: []string{"tsconfig.json", "jsconfig.json", ".code-workspace"}, aliases: []string{"JSON with Comments"}},
	{id: "yaml", style: styleHash, exts: []string{".yaml", ".yml"}, aliases: []string{"YAML", "yml"}},
	{id: "toml", style: styleHash, exts: []string{".toml"}, filenames: []string{"Cargo.lock", "Pipfile"}, aliases: []string{"TOML"}},
	{id: "ini", style: styleIni, exts: []string{".ini", ".cfg", ".conf", ".properties", ".editorconfig", ".gitconfig"}, aliases: []string{"Ini", "properties"}},
	{id: "dotenv", style: styleHash, exts: []string{".env"}},
	{id: "hcl", style: styleHCL, exts: []string{".hcl", ".tf", ".tfvars", ".nomad"}, aliases: []string{"terraform"}},
	{id: "graphql", style: styleHash, exts: []string{".graphql", ".gql"}, aliases: []string{"GraphQL"}},
	{id: "dockerfile", style: styleHash, exts: []string{".dockerfile"}, filenames: []string{"Dockerfile", "Containerfile"}, aliases: []string{"Docker"}},
	{id: "makefile", style: styleHash, exts: []string{".mk", ".mak"}, filenames: []string{"Makefile", "makefile", "GNUmakefile", "justfile"}, aliases: []string{"Makefile", "make"}},
	{id: "cmake", style: style{line: []string{"#"}, block: []classify.Pair{pair("#[[", "]]")}}, exts: []string{".cmake"}, filenames: []string{"CMakeLists.txt"}, aliases: []string{"CMake"}},
	{id: "ignore", style: styleHash, exts: []string{".gitignore", ".dockerignore", ".npmignore"}, aliases: []string{"Ignore"}},
	{id: "jinja", style: styleJinja, exts: []string{".jinja", ".jinja2", ".j2", ".twig", ".djhtml", ".liquid"}},
	{id: "handlebars", style: styleHandlebars, exts: []string{".hbs", ".handlebars", ".mustache"}},
	{id: "pug", style: style{line: []string{"//-", "//"}}, exts: []string{".pug", ".jade"}},
	{id: "plaintext", style: styleNone, exts: []string{".txt"}, aliases: []string{"Plain Text", "text"}},
}

// Builtin returns a fresh copy of the built-in rule sets.
func Builtin() []RuleSet {
	out := make([]RuleSet, 0, len(builtinDefs))
	for _, def := range builtinDefs {
		out = append(out, RuleSet{
			ID: def.id,
			Grammar: classify.Grammar{
				LineComments:  append([]string(nil), def.style.line...),
				BlockComments: append([]classify.Pair(nil), def.style.block...),
				BlockStrings:  append([]classify.Pair(nil), def.style.strings...),
			},
			Aliases:    append([]string(nil), def.aliases...),
			Extensions: append([]string(nil), def.exts...),
			Filenames:  append([]string(nil), def.filenames...),
		})
	}
	return out
}

// Default builds a registry from the built-in rule sets only.
func Default() *Registry {
	reg, err := NewBuilder().Add(Builtin()...).Build()
	if err != nil {
		panic("lang: invalid built-in table: " + err.Error())
	}
	return reg
}
