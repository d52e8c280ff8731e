package scanner

import (
	"regexp"
	"strings"

	"github.com/codegraphhq/codegraph/internal/convention"
	"github.com/codegraphhq/codegraph/internal/model"
)

// jsVariant backs the js/ts/jsx/tsx extensions. It is a line-oriented,
// brace-depth-tracking heuristic scanner in the same spirit as the node
// adapter's own regex-based "AST" detector: no real parser, but precise
// enough to uphold the control-flow false-positive guarantee, which is
// enforced by keyword exclusion rather than by syntactic understanding.
type jsVariant struct {
	jsx bool
}

var conventions = convention.MustLoad("scan")

var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "do": true, "switch": true,
	"case": true, "catch": true, "try": true, "return": true, "break": true,
	"continue": true, "else": true, "finally": true, "typeof": true,
	"instanceof": true, "in": true, "of": true, "function": true,
	"class": true, "const": true, "let": true, "var": true, "import": true,
	"export": true, "default": true, "extends": true, "yield": true,
	"await": true, "delete": true, "void": true, "throw": true, "new": true,
}

var (
	reFuncDecl   = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s+([A-Za-z_$][\w$]*)\s*\(`)
	reVarFunc    = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=]*)?=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|[A-Za-z_$][\w$]*\s*=>)`)
	reClassDecl  = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	reInterface  = regexp.MustCompile(`^\s*(?:export\s+)?interface\s+([A-Za-z_$][\w$]*)`)
	reEnum       = regexp.MustCompile(`^\s*(?:export\s+)?(?:const\s+)?enum\s+([A-Za-z_$][\w$]*)`)
	reTypeAlias  = regexp.MustCompile(`^\s*(?:export\s+)?type\s+([A-Za-z_$][\w$]*)\s*=`)
	reConstant   = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Z][A-Z0-9_]*)\s*(?::[^=]*)?=\s*`)
	reMethod     = regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+|static\s+|readonly\s+|async\s+|\*\s*)*(?:get\s+|set\s+)?([A-Za-z_$][\w$]*)\s*(?:<[^>]*>)?\s*\(`)
	reClassField = regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+|static\s+|readonly\s+)*([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?\(.*\)\s*=>`)

	reExportList         = regexp.MustCompile(`^\s*export\s*\{([^}]*)\}`)
	reDefaultExportIdent = regexp.MustCompile(`^\s*export\s+default\s+([A-Za-z_$][\w$]*)\s*;?\s*$`)
	reModuleExportsIdent = regexp.MustCompile(`module\.exports\s*=\s*([A-Za-z_$][\w$]*)\s*;?`)
	reModuleExportsObj   = regexp.MustCompile(`module\.exports\s*=\s*\{([^}]*)\}`)
	reExportsDotProp     = regexp.MustCompile(`exports\.([A-Za-z_$][\w$]*)\s*=\s*([A-Za-z_$][\w$]*)?`)

	reCallSite = regexp.MustCompile(`(new\s+)?([A-Za-z_$][\w$]*)(\.[A-Za-z_$][\w$]*)?\s*\(`)

	reRequireBind      = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*require\(\s*['"]([^'"]+)['"]\s*\)`)
	reRequireDestr     = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s*\{([^}]*)\}\s*=\s*require\(\s*['"]([^'"]+)['"]\s*\)`)
	reImportDefault    = regexp.MustCompile(`^\s*import\s+([A-Za-z_$][\w$]*)\s*(?:,\s*\{([^}]*)\})?\s*from\s*['"]([^'"]+)['"]`)
	reImportNamed      = regexp.MustCompile(`^\s*import\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)
	reImportNamespace  = regexp.MustCompile(`^\s*import\s*\*\s*as\s+([A-Za-z_$][\w$]*)\s*from\s*['"]([^'"]+)['"]`)
	reImportSideEffect = regexp.MustCompile(`^\s*import\s*['"]([^'"]+)['"]`)

	reReturnsJSX = regexp.MustCompile(`return\s*\(?\s*<[A-Za-z]|=>\s*\(?\s*<[A-Za-z]`)
)

type classCtx struct {
	name      string
	bodyDepth int
}

type funcCtx struct {
	name      string
	className string
	bodyDepth int
}

func (v jsVariant) Scan(sourceText, filePath string, opts Options) (Result, error) {
	masked := maskStringsAndComments(sourceText)
	lines := strings.Split(masked, "\n")
	rawLines := strings.Split(sourceText, "\n")

	depth := 0
	startDepth := make([]int, len(lines))
	for i, line := range lines {
		startDepth[i] = depth
		for _, c := range line {
			switch c {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
	}

	var res Result
	var classStack []classCtx
	var funcStack []funcCtx
	exportedNames := map[string]bool{}
	declOrder := []string{} // names in declaration order, for stable element emission
	declared := map[string]*model.Element{}

	addElement := func(el model.Element) *model.Element {
		declOrder = append(declOrder, el.ID())
		e := el
		declared[el.ID()] = &e
		res.Elements = append(res.Elements, e)
		return &res.Elements[len(res.Elements)-1]
	}

	isJSXExt := v.jsx

	for i, line := range lines {
		d := startDepth[i]

		// Pop class/func contexts we've exited.
		for len(classStack) > 0 && d < classStack[len(classStack)-1].bodyDepth {
			classStack = classStack[:len(classStack)-1]
		}
		for len(funcStack) > 0 && d < funcStack[len(funcStack)-1].bodyDepth {
			funcStack = funcStack[:len(funcStack)-1]
		}

		inClassBody := len(classStack) > 0 && d == classStack[len(classStack)-1].bodyDepth

		switch {
		case inClassBody && reMethod.MatchString(line):
			m := reMethod.FindStringSubmatch(line)
			name := m[1]
			if !controlKeywords[name] {
				cls := classStack[len(classStack)-1]
				qualified := cls.name + "." + name
				params := extractParams(rawLines, i, strings.Index(line, name)+len(name))
				el := model.Element{
					Kind:       model.KindMethod,
					Name:       qualified,
					File:       filePath,
					Line:       i + 1,
					Parameters: params,
				}
				addElement(el)
				funcStack = append(funcStack, funcCtx{name: qualified, className: cls.name, bodyDepth: d + 1})
			}

		case inClassBody && reClassField.MatchString(line):
			m := reClassField.FindStringSubmatch(line)
			name := m[1]
			cls := classStack[len(classStack)-1]
			qualified := cls.name + "." + name
			params := extractParams(rawLines, i, strings.Index(line, "(")-1)
			el := model.Element{
				Kind:       model.KindMethod,
				Name:       qualified,
				File:       filePath,
				Line:       i + 1,
				Parameters: params,
			}
			addElement(el)
			funcStack = append(funcStack, funcCtx{name: qualified, className: cls.name, bodyDepth: d + 1})

		case reClassDecl.MatchString(line):
			m := reClassDecl.FindStringSubmatch(line)
			name := m[1]
			el := model.Element{Kind: model.KindClass, Name: name, File: filePath, Line: i + 1}
			addElement(el)
			classStack = append(classStack, classCtx{name: name, bodyDepth: d + 1})
			if strings.Contains(line, "export") {
				exportedNames[name] = true
			}

		case reFuncDecl.MatchString(line):
			m := reFuncDecl.FindStringSubmatch(line)
			name := m[1]
			kind := classifyFunctionKind(name, isJSXExt, bodyExcerpt(rawLines, i, startDepth, d))
			params := extractParams(rawLines, i, strings.Index(line, name)+len(name))
			el := model.Element{Kind: kind, Name: name, File: filePath, Line: i + 1, Parameters: params}
			addElement(el)
			funcStack = append(funcStack, funcCtx{name: name, bodyDepth: d + 1})
			if strings.Contains(line, "export") {
				exportedNames[name] = true
			}

		case reVarFunc.MatchString(line):
			m := reVarFunc.FindStringSubmatch(line)
			name := m[1]
			kind := classifyFunctionKind(name, isJSXExt, bodyExcerpt(rawLines, i, startDepth, d))
			params := extractParams(rawLines, i, strings.Index(line, name)+len(name))
			el := model.Element{Kind: kind, Name: name, File: filePath, Line: i + 1, Parameters: params}
			addElement(el)
			funcStack = append(funcStack, funcCtx{name: name, bodyDepth: d + 1})
			if strings.Contains(line, "export") {
				exportedNames[name] = true
			}

		case reConstant.MatchString(line):
			m := reConstant.FindStringSubmatch(line)
			name := m[1]
			if conventions.ConstantPattern.MatchString(name) {
				el := model.Element{Kind: model.KindConstant, Name: name, File: filePath, Line: i + 1}
				addElement(el)
				if strings.Contains(line, "export") {
					exportedNames[name] = true
				}
			}

		case reInterface.MatchString(line):
			m := reInterface.FindStringSubmatch(line)
			name := m[1]
			addElement(model.Element{Kind: model.KindInterface, Name: name, File: filePath, Line: i + 1})
			if strings.Contains(line, "export") {
				exportedNames[name] = true
			}

		case reEnum.MatchString(line):
			m := reEnum.FindStringSubmatch(line)
			name := m[1]
			addElement(model.Element{Kind: model.KindEnum, Name: name, File: filePath, Line: i + 1})
			if strings.Contains(line, "export") {
				exportedNames[name] = true
			}

		case reTypeAlias.MatchString(line):
			m := reTypeAlias.FindStringSubmatch(line)
			name := m[1]
			addElement(model.Element{Kind: model.KindType, Name: name, File: filePath, Line: i + 1})
			if strings.Contains(line, "export") {
				exportedNames[name] = true
			}
		}

		collectExportMarkers(line, exportedNames)
		collectImports(rawLines[i], i+1, &res.Imports)
		collectCalls(line, i+1, funcStack, &res.Calls)
	}

	for idx := range res.Elements {
		if exportedNames[res.Elements[idx].Name] {
			res.Elements[idx].Exported = true
		}
		if res.Elements[idx].Kind == model.KindMethod {
			// Methods inherit export status from their owning class.
			if cls, _, ok := strings.Cut(res.Elements[idx].Name, "."); ok && exportedNames[cls] {
				res.Elements[idx].Exported = true
			}
		}
	}

	res.Exports = buildExportEdges(exportedNames)
	return res, nil
}

func classifyFunctionKind(name string, jsxExt bool, body string) model.ElementKind {
	if conventions.HookPrefix != "" && convention.IsHookName(name) {
		return model.KindHook
	}
	if jsxExt && convention.IsPascalCase(name) && reReturnsJSX.MatchString(body) {
		return model.KindComponent
	}
	return model.KindFunction
}

// bodyExcerpt returns a bounded window of raw source starting at the
// declaration line, used only for the lightweight JSX-return heuristic.
func bodyExcerpt(rawLines []string, from int, startDepth []int, declDepth int) string {
	end := from + 40
	if end > len(rawLines) {
		end = len(rawLines)
	}
	return strings.Join(rawLines[from:end], "\n")
}

func collectExportMarkers(line string, exportedNames map[string]bool) {
	if m := reExportList.FindStringSubmatch(line); m != nil {
		for _, item := range strings.Split(m[1], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			local, _, _ := strings.Cut(item, " as ")
			exportedNames[strings.TrimSpace(local)] = true
		}
	}
	if m := reDefaultExportIdent.FindStringSubmatch(line); m != nil {
		exportedNames[m[1]] = true
	}
	if m := reModuleExportsIdent.FindStringSubmatch(line); m != nil {
		exportedNames[m[1]] = true
	}
	if m := reModuleExportsObj.FindStringSubmatch(line); m != nil {
		for _, item := range strings.Split(m[1], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			key, val, hasColon := strings.Cut(item, ":")
			if hasColon {
				exportedNames[strings.TrimSpace(val)] = true
			} else {
				exportedNames[strings.TrimSpace(key)] = true
			}
		}
	}
	if m := reExportsDotProp.FindStringSubmatch(line); m != nil {
		if m[2] != "" {
			exportedNames[m[2]] = true
		}
		exportedNames[m[1]] = true
	}
}

func collectImports(line string, lineNo int, out *[]ImportEdge) {
	switch {
	case reImportDefault.MatchString(line):
		m := reImportDefault.FindStringSubmatch(line)
		specs := []string{m[1]}
		if m[2] != "" {
			specs = append(specs, splitSpecifiers(m[2])...)
		}
		*out = append(*out, ImportEdge{Source: m[3], Specifiers: specs, IsDefault: true, ImportType: ImportESM, Line: lineNo})
	case reImportNamespace.MatchString(line):
		m := reImportNamespace.FindStringSubmatch(line)
		*out = append(*out, ImportEdge{Source: m[2], Specifiers: []string{"*"}, ImportType: ImportESM, Line: lineNo})
	case reImportNamed.MatchString(line):
		m := reImportNamed.FindStringSubmatch(line)
		*out = append(*out, ImportEdge{Source: m[2], Specifiers: splitSpecifiers(m[1]), ImportType: ImportESM, Line: lineNo})
	case reImportSideEffect.MatchString(line):
		m := reImportSideEffect.FindStringSubmatch(line)
		*out = append(*out, ImportEdge{Source: m[1], ImportType: ImportESM, Line: lineNo})
	case reRequireDestr.MatchString(line):
		m := reRequireDestr.FindStringSubmatch(line)
		*out = append(*out, ImportEdge{Source: m[2], Specifiers: splitSpecifiers(m[1]), ImportType: ImportCommonJS, Line: lineNo})
	case reRequireBind.MatchString(line):
		m := reRequireBind.FindStringSubmatch(line)
		*out = append(*out, ImportEdge{Source: m[2], Specifiers: []string{"*"}, ImportType: ImportCommonJS, Line: lineNo})
	}
}

func splitSpecifiers(group string) []string {
	var out []string
	for _, item := range strings.Split(group, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		local, _, _ := strings.Cut(item, " as ")
		out = append(out, strings.TrimSpace(local))
	}
	return out
}

func collectCalls(line string, lineNo int, funcStack []funcCtx, out *[]CallEdge) {
	var callerFn, callerClass string
	if len(funcStack) > 0 {
		top := funcStack[len(funcStack)-1]
		callerFn = top.name
		callerClass = top.className
	}
	for _, m := range reCallSite.FindAllStringSubmatch(line, -1) {
		isNew := m[1] != ""
		ident := m[2]
		method := strings.TrimPrefix(m[3], ".")
		if controlKeywords[ident] && ident != "super" && !isNew {
			continue
		}
		edge := CallEdge{CallerFunction: callerFn, CallerClass: callerClass, Line: lineNo}
		switch {
		case isNew:
			edge.CallType = CallConstructor
			edge.CalleeFunction = ident
			if method != "" {
				edge.CalleeObject = ident
				edge.CalleeFunction = method
			}
		case method != "":
			edge.CallType = CallMethod
			edge.CalleeObject = ident
			edge.CalleeFunction = method
		case ident == "super":
			edge.CallType = CallConstructor
			edge.CalleeFunction = "super"
		default:
			edge.CallType = CallFunction
			edge.CalleeFunction = ident
		}
		*out = append(*out, edge)
	}
}

func buildExportEdges(exportedNames map[string]bool) []ExportEdge {
	if len(exportedNames) == 0 {
		return nil
	}
	specs := make([]string, 0, len(exportedNames))
	for name := range exportedNames {
		specs = append(specs, name)
	}
	return []ExportEdge{{Specifiers: specs, ExportType: ExportESM}}
}

// extractParams scans forward from a declaration line for the first '(' at
// or after fromCol, finds its matching ')', and splits the interior on
// top-level commas.
func extractParams(rawLines []string, lineIdx, fromCol int) []model.Parameter {
	if fromCol < 0 {
		fromCol = 0
	}
	text := strings.Join(rawLines, "\n")
	offset := 0
	for i := 0; i < lineIdx; i++ {
		offset += len(rawLines[i]) + 1
	}
	start := offset + fromCol
	if start >= len(text) {
		return nil
	}
	openIdx := strings.IndexByte(text[start:], '(')
	if openIdx < 0 {
		return nil
	}
	openIdx += start

	depth := 0
	j := openIdx
	for ; j < len(text); j++ {
		switch text[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				goto closed
			}
		}
	}
closed:
	if j >= len(text) {
		return nil
	}
	interior := text[openIdx+1 : j]
	return splitParams(interior)
}

func splitParams(interior string) []model.Parameter {
	interior = strings.TrimSpace(interior)
	if interior == "" {
		return nil
	}
	var parts []string
	depth := 0
	last := 0
	for i, c := range interior {
		switch c {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, interior[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, interior[last:])

	var out []model.Parameter
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, parseParam(p))
	}
	return out
}

func parseParam(p string) model.Parameter {
	param := model.Parameter{}
	if strings.HasPrefix(p, "...") {
		param.IsRest = true
		p = strings.TrimPrefix(p, "...")
	}
	if idx := strings.Index(p, "="); idx >= 0 {
		param.HasDefault = true
		p = p[:idx]
	}
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "{") || strings.HasPrefix(p, "[") {
		param.IsDestructured = true
		param.Name = strings.Join(extractIdentifiers(p), ",")
		return param
	}
	if idx := strings.Index(p, ":"); idx >= 0 {
		p = p[:idx]
	}
	param.Name = strings.TrimSpace(strings.TrimSuffix(p, "?"))
	return param
}

var reIdent = regexp.MustCompile(`[A-Za-z_$][\w$]*`)

func extractIdentifiers(pattern string) []string {
	matches := reIdent.FindAllString(pattern, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m)
	}
	return out
}
