package interp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/go-minipy/internal/ast"
	"github.com/cwbudde/go-minipy/internal/lexer"
	"github.com/cwbudde/go-minipy/internal/parser"
)

// execImport loads each module and binds it under its alias, or under the
// last dotted component when no alias was given.
func (i *Interpreter) execImport(statement *ast.Import) error {
	for _, alias := range statement.Names {
		module, err := i.loadModule(alias.Name)
		if err != nil {
			return err
		}

		name := alias.AsName
		if name == "" {
			parts := strings.Split(alias.Name, ".")
			name = parts[len(parts)-1]
		}
		i.scope.Define(name, module)
	}
	return nil
}

// execImportFrom loads the module and copies the requested bindings into
// the current scope. A star import copies every binding.
func (i *Interpreter) execImportFrom(statement *ast.ImportFrom) error {
	module, err := i.loadModule(statement.Module)
	if err != nil {
		return err
	}

	if len(statement.Names) == 1 && statement.Names[0].Name == "*" {
		for _, name := range module.Members.Names() {
			value, _ := module.Members.GetLocal(name)
			i.scope.Define(name, value)
		}
		return nil
	}

	for _, alias := range statement.Names {
		value, ok := module.Members.GetLocal(alias.Name)
		if !ok {
			return newError(ImportErr, "cannot import name %q from %q", alias.Name, statement.Module)
		}
		name := alias.AsName
		if name == "" {
			name = alias.Name
		}
		i.scope.Define(name, value)
	}
	return nil
}

// loadModule resolves a dotted module name to a file under the working
// directory, executes it once, and caches the result by resolved path.
// Re-imports never re-execute.
func (i *Interpreter) loadModule(dotted string) (*ModuleValue, error) {
	parts := strings.Split(dotted, ".")
	path := filepath.Join(append([]string{i.workdir}, parts...)...) + ".py"
	if resolved, err := filepath.Abs(path); err == nil {
		path = resolved
	}

	if module, ok := i.modules[path]; ok {
		return module, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(ImportErr, "No module named %q", dotted)
	}

	tokens, err := lexer.Tokenize(string(source))
	if err != nil {
		return nil, newError(ImportErr, "cannot tokenize module %q: %s", dotted, err)
	}
	tree, err := parser.Parse(tokens)
	if err != nil {
		return nil, newError(ImportErr, "cannot parse module %q: %s", dotted, err)
	}

	// The module executes in a fresh scope that serves as both its scope
	// and its globals. Cache before executing so that import cycles
	// terminate, observing partially-initialized modules as the original
	// system does.
	env := NewEnvironment()
	module := &ModuleValue{Name: dotted, Members: env}
	i.modules[path] = module

	savedScope, savedGlobals := i.scope, i.globals
	i.scope, i.globals = env, env
	_, err = i.execBlock(tree.Body)
	i.scope, i.globals = savedScope, savedGlobals

	if err != nil {
		delete(i.modules, path)
		return nil, err
	}
	return module, nil
}
