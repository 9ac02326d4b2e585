package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	errs "github.com/bdlm/errors"
	"github.com/bdlm/log"

	"github.com/reoring/dynok"
	"github.com/reoring/dynok/cmd/dynok/internal/config"
	"github.com/reoring/dynok/dsl"
	"github.com/reoring/dynok/i18n"
)

var (
	errUsage   = errors.New("usage")
	errInvalid = errors.New("invalid input")
)

type command struct {
	stdin  io.Reader
	stdout io.Writer
	cfg    config.Config
	opt    dynok.DecodeOpt
}

// setup loads the configuration for a subcommand and returns its flag set.
func (c *command) setup(name string, args []string, extra func(fs *flag.FlagSet)) (*flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stdout)
	if extra != nil {
		extra(fs)
	}
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errUsage
		}
		return nil, errs.Wrap(err, 0, "error loading configuration")
	}
	opt, err := cfg.DecodeOpt()
	if err != nil {
		return nil, errs.Wrap(err, 0, "invalid configuration")
	}
	opt.OnWarning = func(w dynok.Warning) {
		log.WithFields(log.Fields{"code": w.Code, "path": w.Path}).Warnf("%s", w.Message)
	}
	i18n.SetLanguage(cfg.Language)
	log.WithFields(log.Fields{
		"driver":     opt.Driver.String(),
		"numbers":    cfg.Numbers,
		"duplicates": cfg.Duplicates,
	}).Debugf("%s: configuration loaded", name)
	c.cfg, c.opt = cfg, opt
	return fs, nil
}

// decode reads one document from path, or from stdin when path is "" or "-".
func (c *command) decode(path string) (*dynok.Object, error) {
	if path == "" || path == "-" {
		return dynok.FromJSONReader(c.stdin, c.opt)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(err, 0, "error opening input")
	}
	defer f.Close()
	return dynok.FromJSONReader(f, c.opt)
}

func (c *command) print(o *dynok.Object) {
	if c.cfg.Compact {
		fmt.Fprintln(c.stdout, o.String())
		return
	}
	fmt.Fprintln(c.stdout, o.ToJSONIndent("", c.cfg.Indent))
}

func (c *command) format(args []string) error {
	fs, err := c.setup("fmt", args, nil)
	if err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return errUsage
	}
	o, err := c.decode(fs.Arg(0))
	if err != nil {
		return err
	}
	c.print(o)
	return nil
}

func (c *command) validate(args []string) error {
	fs, err := c.setup("validate", args, nil)
	if err != nil {
		return err
	}
	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	failed := 0
	for _, in := range inputs {
		name := in
		if name == "-" {
			name = "<stdin>"
		}
		o, err := c.decode(in)
		if err != nil {
			failed++
			fmt.Fprintf(c.stdout, "%s: %v\n", name, err)
			log.WithFields(log.Fields{"input": name, "code": dynok.CodeOf(err)}).Debugf("validation failed")
			continue
		}
		fmt.Fprintf(c.stdout, "%s: ok (%s, %d properties)\n", name, o.Type(), o.Len())
	}
	if failed > 0 {
		log.Infof("%d of %d inputs invalid", failed, len(inputs))
		return errInvalid
	}
	return nil
}

func (c *command) get(args []string) error {
	var path string
	fs, err := c.setup("get", args, func(fs *flag.FlagSet) {
		fs.StringVar(&path, "path", "", "dot-separated property path, e.g. employer.name")
	})
	if err != nil {
		return err
	}
	if path == "" || fs.NArg() > 1 {
		fs.Usage()
		return errUsage
	}
	o, err := c.decode(fs.Arg(0))
	if err != nil {
		return err
	}
	v, err := resolve(o, path)
	if err != nil {
		return err
	}
	if v.Kind() == dynok.KindObject {
		obj, _ := dynok.Cast[*dynok.Object](v)
		c.print(obj)
		return nil
	}
	fmt.Fprintln(c.stdout, v.String())
	return nil
}

// resolve looks up a dot-separated property path.
func resolve(o *dynok.Object, path string) (dynok.Value, error) {
	v, err := lookup(o, strings.Split(path, "."))
	if err != nil {
		return dynok.Value{}, errs.Wrap(err, 0, "error resolving %s", path)
	}
	return v, nil
}

// lookup walks nested objects by property name.
func lookup(o *dynok.Object, segments []string) (dynok.Value, error) {
	for i, name := range segments {
		if i == len(segments)-1 {
			return dynok.Get[dynok.Value](o, name)
		}
		next, err := dynok.Get[*dynok.Object](o, name)
		if err != nil {
			return dynok.Value{}, err
		}
		o = next
	}
	return dynok.Value{}, &dynok.PropertyNotFoundError{}
}

func (c *command) demo(args []string) error {
	if _, err := c.setup("demo", args, nil); err != nil {
		return err
	}
	o, err := demoCustomer()
	if err != nil {
		return errs.Wrap(err, 0, "error building demo object")
	}
	c.print(o)
	return nil
}

func demoCustomer() (*dynok.Object, error) {
	return dsl.Object("Customer").
		Property("id", int64(0)).
		Property("email", "george@sunnyvale.com").
		Property("premium", true).
		Property("yearsOfService", []int32{2020, 2021, 2022}).
		Property("rating", 4.5).
		Object("employer", "Company", func(b *dsl.Builder) {
			b.Property("name", "Main Corp").Property("employees", int64(1200))
		}).
		Property("ownedCompanies", []*dsl.Builder{
			dsl.Object("Company").Property("name", "Acme"),
			dsl.Object("Company").Property("name", "Globex"),
		}).
		Build()
}
