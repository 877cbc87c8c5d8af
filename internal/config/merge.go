package config

import "strings"

// Resolve* return the last non-nil layer value, or def when every layer is unset.

func ResolveString(def string, values ...*string) string {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveInt(def int, values ...*int) int {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveBool(def bool, values ...*bool) bool {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

// ResolveStrings treats an explicitly empty list as "clear".
func ResolveStrings(def []string, values ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range values {
		if v != nil {
			if len(*v) == 0 {
				result = []string{}
				continue
			}
			result = cloneStrings(*v)
		}
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	return strings.TrimSpace(ResolveString(def, values...))
}

func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Include = ResolveStrings(out.Include, layer.Include)
		out.Exclude = ResolveStrings(out.Exclude, layer.Exclude)
		out.UseGitignore = ResolveBool(out.UseGitignore, layer.UseGitignore)
		out.Discovery = ResolveAndTrim(out.Discovery, layer.Discovery)
		out.IgnoreUnsupported = ResolveBool(out.IgnoreUnsupported, layer.IgnoreUnsupported)
		out.Encoding = ResolveAndTrim(out.Encoding, layer.Encoding)
		out.MaxOpenFiles = ResolveInt(out.MaxOpenFiles, layer.MaxOpenFiles)
		out.MaxFileBytes = ResolveInt(out.MaxFileBytes, layer.MaxFileBytes)
		out.ExtensionDirs = ResolveStrings(out.ExtensionDirs, layer.ExtensionDirs)
		out.Progress = ResolveBool(out.Progress, layer.Progress)
	}
	return out
}

func MergeOutput(base OutputSettings, layers ...OutputConfig) OutputSettings {
	out := base
	for _, layer := range layers {
		out.EOL = ResolveString(out.EOL, layer.EOL)
		out.OutputDir = ResolveAndTrim(out.OutputDir, layer.OutputDir)
		out.OutputText = ResolveBool(out.OutputText, layer.OutputText)
		out.OutputCSV = ResolveBool(out.OutputCSV, layer.OutputCSV)
		out.OutputMarkdown = ResolveBool(out.OutputMarkdown, layer.OutputMarkdown)
		out.OutputJSON = ResolveBool(out.OutputJSON, layer.OutputJSON)
		out.Preview = ResolveAndTrim(out.Preview, layer.Preview)
		out.DiffWith = ResolveAndTrim(out.DiffWith, layer.DiffWith)
		out.LinkBase = ResolveAndTrim(out.LinkBase, layer.LinkBase)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
