// Package generate drives a full generation run: it introspects each
// configured Go package, builds schema descriptors, renders the Python
// module, and writes it to disk.
package generate

import (
	"github.com/confgen/confgen"
	"github.com/confgen/confgen/config"
	"github.com/confgen/confgen/errors"
	"github.com/confgen/confgen/logger"
	"github.com/confgen/confgen/pygen"
	"github.com/confgen/confgen/source"
)

// Run generates every module in the config, in order. The first failing
// module aborts the run; earlier modules stay written.
func Run(cfg config.ConfgenConf) error {
	gen := pygen.NewGenerator(cfg.Header)
	for _, mc := range cfg.Modules {
		file, modulePath, err := Module(mc, cfg.PackagePrefix)
		if err != nil {
			return err
		}
		path, err := pygen.Save(cfg.OutputDir, cfg.ModulePathPattern, modulePath, gen.GenerateFile(file))
		if err != nil {
			return err
		}
		logger.Infow("generated module",
			"package", mc.Name, "classes", len(file.Classes), "path", path)
	}
	return nil
}

// Module builds the rendered form of one configured module without writing
// anything. The returned modulePath is the slash form of the generated
// module's dotted path, for expansion into the output path pattern.
func Module(mc config.ModuleConf, pkgPrefix string) (*pygen.File, string, error) {
	mod, err := source.Load(mc.Name, mc.Classes, pkgPrefix)
	if err != nil {
		return nil, "", errors.Wrapf(err, "module %s", mc.Name)
	}

	imports := confgen.NewImportSet()
	b := confgen.NewBuilder(imports, nil)
	flags := confgen.DefaultFlags(mc.DefaultFlags.Convert, mc.DefaultFlags.Recursive)

	file := &pygen.File{
		Module:  mod.PyModule,
		Imports: imports,
		Enums:   mod.Enums,
	}
	for _, cls := range mod.Classes {
		file.Classes = append(file.Classes, b.BuildClass(mc.Name, cls, flags))
	}
	return file, mod.ModulePath, nil
}
