package main

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
	"golang.org/x/tools/go/packages"
)

// runtimeImportPath is the package the generated code calls into.
const runtimeImportPath = "github.com/jsonable/jsonable-go"

const (
	directive         = "//jsonable:generate"
	generatedFileName = "jsonable_gen.go"
	generatedHeader   = "// Code generated by jsonablegen; DO NOT EDIT."
)

type shapeKind int

const (
	shapeNamed shapeKind = iota
	shapeTuple
	shapeUnit
)

func (s shapeKind) String() string {
	switch s {
	case shapeNamed:
		return "named"
	case shapeTuple:
		return "tuple"
	case shapeUnit:
		return "unit"
	default:
		return "<unknown shape>"
	}
}

type packageInfo struct {
	Dir   string
	Name  string
	Types []typeInfo
}

type typeInfo struct {
	Name   string
	Shape  shapeKind
	Fields []fieldInfo
}

func (t typeInfo) Named() bool { return t.Shape == shapeNamed }
func (t typeInfo) Tuple() bool { return t.Shape == shapeTuple }
func (t typeInfo) Unit() bool  { return t.Shape == shapeUnit }

type fieldInfo struct {
	Name       string
	Key        string
	Index      int
	Optional   bool
	DecodeExpr string
	EncodeExpr string
}

// markedType is a directive-carrying type before field resolution.
type markedType struct {
	name   string
	tuple  bool
	fields []rawField
}

type rawField struct {
	name string
	key  string
	typ  ast.Expr
}

//go:embed templates/jsonable_gen.gotemplate
var genTemplate string

func findModuleRoot(start string) (string, string, error) {
	dir := start
	for {
		modPath := filepath.Join(dir, "go.mod")
		data, err := os.ReadFile(modPath)
		if err == nil {
			modulePath, err := parseModulePath(data)
			if err != nil {
				return "", "", err
			}
			return dir, modulePath, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("go.mod not found starting from %s", start)
		}
		dir = parent
	}
}

func parseModulePath(data []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "module ") {
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				return fields[1], nil
			}
			return "", fmt.Errorf("module declaration malformed")
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in go.mod")
}

func collectPackageInfos(root string) ([]*packageInfo, error) {
	dirs := make(map[string]struct{})
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldSkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") {
			return nil
		}
		if strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		dirs[filepath.Dir(path)] = struct{}{}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	var infos []*packageInfo
	for dir := range dirs {
		pkgInfos, err := parsePackageDir(dir)
		if err != nil {
			return nil, err
		}
		infos = append(infos, pkgInfos...)
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Dir == infos[j].Dir {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].Dir < infos[j].Dir
	})
	return infos, nil
}

func parsePackageDir(dir string) ([]*packageInfo, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedSyntax | packages.NeedFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, err
	}

	var infos []*packageInfo
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			if isSkippablePackageErrors(pkg.Errors) {
				log.Printf("jsonablegen: skipping %s (no buildable Go files for current tags)", dir)
				continue
			}
			return nil, fmt.Errorf("package load error in %s: %v", dir, pkg.Errors[0])
		}
		if pkg.Name == "" {
			continue
		}
		if strings.HasSuffix(pkg.Name, "_test") {
			continue
		}
		var marked []markedType
		for _, file := range pkg.Syntax {
			if pkg.Fset != nil {
				filename := pkg.Fset.Position(file.Pos()).Filename
				if filename != "" {
					base := filepath.Base(filename)
					switch {
					case strings.HasSuffix(base, "_test.go"):
						continue
					case base == generatedFileName:
						continue
					}
				}
			}
			fileMarked, err := collectMarkedTypes(file)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", dir, err)
			}
			marked = append(marked, fileMarked...)
		}
		if len(marked) == 0 {
			infos = append(infos, &packageInfo{Dir: dir, Name: pkg.Name})
			continue
		}

		info := &packageInfo{Dir: dir, Name: pkg.Name}
		known := make(map[string]struct{}, len(marked))
		for _, mt := range marked {
			known[mt.name] = struct{}{}
		}
		for _, mt := range marked {
			ti, err := resolveType(mt, known, "jsonable.")
			if err != nil {
				return nil, fmt.Errorf("%s: %w", dir, err)
			}
			info.Types = append(info.Types, ti)
		}
		sort.Slice(info.Types, func(i, j int) bool {
			return info.Types[i].Name < info.Types[j].Name
		})
		infos = append(infos, info)
	}

	return infos, nil
}

func isSkippablePackageErrors(errs []packages.Error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		msg := strings.ToLower(err.Msg)
		if strings.Contains(msg, "build constraints exclude all go files") {
			continue
		}
		if strings.Contains(msg, "no go files") {
			continue
		}
		return false
	}
	return true
}

// collectMarkedTypes finds directive-carrying type declarations in file and
// classifies their raw fields. Non-struct shapes are rejected here so that
// no partial implementation is ever emitted.
func collectMarkedTypes(file *ast.File) ([]markedType, error) {
	var out []markedType
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range genDecl.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			arg, marked := directiveArg(doc)
			if !marked {
				continue
			}
			tuple := false
			switch arg {
			case "":
			case "tuple":
				tuple = true
			default:
				return nil, fmt.Errorf("type %s: unknown %s argument %q", ts.Name.Name, directive, arg)
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return nil, fmt.Errorf("type %s: %s only supports struct shapes (named, tuple, unit)", ts.Name.Name, directive)
			}
			if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
				return nil, fmt.Errorf("type %s: generic types are not supported", ts.Name.Name)
			}
			fields, err := collectRawFields(ts.Name.Name, st, tuple)
			if err != nil {
				return nil, err
			}
			if tuple && len(fields) == 0 {
				return nil, fmt.Errorf("type %s: tuple shape requires at least one field", ts.Name.Name)
			}
			out = append(out, markedType{name: ts.Name.Name, tuple: tuple, fields: fields})
		}
	}
	return out, nil
}

func directiveArg(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if c.Text == directive {
			return "", true
		}
		if strings.HasPrefix(c.Text, directive+" ") {
			return strings.TrimSpace(strings.TrimPrefix(c.Text, directive+" ")), true
		}
	}
	return "", false
}

// collectRawFields lists the convertible fields of st in declaration order.
// The JSON key comes from the json tag when present, otherwise it is the
// snake_case of the Go field name. Fields tagged json:"-" and unexported
// fields are left out of named shapes; tuple shapes admit neither.
func collectRawFields(typeName string, st *ast.StructType, tuple bool) ([]rawField, error) {
	var fields []rawField
	seen := make(map[string]struct{})
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return nil, fmt.Errorf("type %s: embedded fields are not supported", typeName)
		}
		tagName := ""
		if field.Tag != nil {
			tagValue, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				return nil, fmt.Errorf("type %s: malformed struct tag", typeName)
			}
			jsonTag := reflect.StructTag(tagValue).Get("json")
			tagName = strings.Split(jsonTag, ",")[0]
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				if tuple {
					return nil, fmt.Errorf("type %s: tuple field %s must be exported", typeName, name.Name)
				}
				continue
			}
			if tagName == "-" {
				if tuple {
					return nil, fmt.Errorf("type %s: tuple field %s cannot be skipped", typeName, name.Name)
				}
				continue
			}
			key := tagName
			if key == "" {
				key = strcase.ToSnake(name.Name)
			}
			if tuple {
				key = strconv.Itoa(len(fields))
			}
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("type %s: duplicate json key %q", typeName, key)
			}
			seen[key] = struct{}{}
			fields = append(fields, rawField{name: name.Name, key: key, typ: field.Type})
		}
	}
	return fields, nil
}

// resolveType turns a marked type into template input, mapping every field
// type to a converter/encoder expression.
func resolveType(mt markedType, known map[string]struct{}, prefix string) (typeInfo, error) {
	shape := shapeNamed
	switch {
	case mt.tuple:
		shape = shapeTuple
	case len(mt.fields) == 0:
		shape = shapeUnit
	}
	ti := typeInfo{Name: mt.name, Shape: shape}
	for i, rf := range mt.fields {
		dec, enc, optional, err := fieldExprs(rf.typ, known, prefix)
		if err != nil {
			return typeInfo{}, fmt.Errorf("type %s, field %s: %w", mt.name, rf.name, err)
		}
		ti.Fields = append(ti.Fields, fieldInfo{
			Name:       rf.name,
			Key:        rf.key,
			Index:      i,
			Optional:   optional,
			DecodeExpr: dec,
			EncodeExpr: enc,
		})
	}
	return ti, nil
}

// fieldExprs maps a field type expression to its converter and encoder
// expressions. The boolean result marks the optional wrappers (*T and
// Option[T]); it only matters at the top level of a field.
func fieldExprs(expr ast.Expr, known map[string]struct{}, prefix string) (string, string, bool, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		switch t.Name {
		case "string":
			return prefix + "String", prefix + "EncodeString", false, nil
		case "bool":
			return prefix + "Bool", prefix + "EncodeBool", false, nil
		case "int":
			return prefix + "Int", prefix + "EncodeInt", false, nil
		case "int64":
			return prefix + "Int64", prefix + "EncodeInt64", false, nil
		case "float64":
			return prefix + "Float64", prefix + "EncodeFloat64", false, nil
		case "any":
			return prefix + "Any", prefix + "EncodeAny", false, nil
		}
		if _, ok := known[t.Name]; ok {
			return prefix + "StructOf[" + t.Name + "]()", t.Name + ".ToJSON", false, nil
		}
		return "", "", false, fmt.Errorf("unsupported field type %s", t.Name)
	case *ast.StarExpr:
		dec, enc, _, err := fieldExprs(t.X, known, prefix)
		if err != nil {
			return "", "", false, err
		}
		return prefix + "PtrOf(" + dec + ")", prefix + "EncodePtrOf(" + enc + ")", true, nil
	case *ast.ArrayType:
		if t.Len != nil {
			return "", "", false, fmt.Errorf("fixed-size arrays are not supported")
		}
		dec, enc, _, err := fieldExprs(t.Elt, known, prefix)
		if err != nil {
			return "", "", false, err
		}
		return prefix + "SliceOf(" + dec + ")", prefix + "EncodeSliceOf(" + enc + ")", false, nil
	case *ast.MapType:
		key, ok := t.Key.(*ast.Ident)
		if !ok || key.Name != "string" {
			return "", "", false, fmt.Errorf("map keys must be strings")
		}
		dec, enc, _, err := fieldExprs(t.Value, known, prefix)
		if err != nil {
			return "", "", false, err
		}
		return prefix + "MapOf(" + dec + ")", prefix + "EncodeMapOf(" + enc + ")", false, nil
	case *ast.IndexExpr:
		if !isOptionExpr(t.X) {
			return "", "", false, fmt.Errorf("unsupported generic field type")
		}
		dec, enc, _, err := fieldExprs(t.Index, known, prefix)
		if err != nil {
			return "", "", false, err
		}
		return prefix + "OptionOf(" + dec + ")", prefix + "EncodeOptionOf(" + enc + ")", true, nil
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return prefix + "Any", prefix + "EncodeAny", false, nil
		}
		return "", "", false, fmt.Errorf("interface field types are not supported")
	default:
		return "", "", false, fmt.Errorf("unsupported field type")
	}
}

// isOptionExpr recognizes Option[...] and jsonable.Option[...] field types.
func isOptionExpr(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name == "Option"
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		return ok && pkg.Name == "jsonable" && t.Sel.Name == "Option"
	default:
		return false
	}
}

func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	switch name {
	case "vendor", "node_modules", "testdata":
		return true
	default:
		return false
	}
}

type templateData struct {
	PackageName   string
	Imports       []string
	Types         []typeInfo
	RuntimePrefix string
}

func generatePackage(info *packageInfo, moduleRoot, modulePath string) ([]byte, error) {
	moduleRoot = filepath.Clean(moduleRoot)
	info.Dir = filepath.Clean(info.Dir)

	// Generating into the runtime package itself would be a self-import.
	isRuntimePackage := modulePath == runtimeImportPath && info.Dir == moduleRoot
	prefix := "jsonable."
	var imports []string
	if isRuntimePackage {
		prefix = ""
	} else {
		imports = append(imports, fmt.Sprintf("jsonable %q", runtimeImportPath))
	}

	types := make([]typeInfo, len(info.Types))
	copy(types, info.Types)
	if isRuntimePackage {
		for i := range types {
			for j := range types[i].Fields {
				f := &types[i].Fields[j]
				f.DecodeExpr = strings.ReplaceAll(f.DecodeExpr, "jsonable.", "")
				f.EncodeExpr = strings.ReplaceAll(f.EncodeExpr, "jsonable.", "")
			}
		}
	}

	var buf bytes.Buffer
	tmpl, err := template.New("jsonable_gen").Parse(genTemplate)
	if err != nil {
		return nil, err
	}
	if err := tmpl.Execute(&buf, templateData{
		PackageName:   info.Name,
		Imports:       imports,
		Types:         types,
		RuntimePrefix: prefix,
	}); err != nil {
		return nil, err
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return formatted, nil
}

func writeFileIfChanged(filePath string, data []byte) (bool, error) {
	existing, err := os.ReadFile(filePath)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func removeGeneratedFile(dir string) (bool, error) {
	filePath := filepath.Join(dir, generatedFileName)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if !bytes.HasPrefix(data, []byte(generatedHeader)) {
		return false, nil
	}
	if err := os.Remove(filePath); err != nil {
		return false, err
	}
	return true, nil
}
