package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ava12/rulematch"
	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/internal/config"
	"github.com/ava12/rulematch/ruledef"
)

const genError = rulematch.ConfigErrors + 50

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

type genOptions struct {
	outFileName, packageName, varName string
}

func newGenCmd(cfg *config.Config) *cobra.Command {
	opts := &genOptions{}
	genCmd := &cobra.Command{
		Use:   "gen <file>",
		Short: "Convert rule block to Go source",
		Long: `gen writes Go file defining rule map variable of type map[grammar.RuleID]grammar.Production.
Default output name is the name of input file with .go suffix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cfg, args[0], opts)
		},
	}
	genCmd.Flags().StringVarP(&opts.outFileName, "output", "o", "", "output file name")
	genCmd.Flags().StringVarP(&opts.packageName, "package", "p", "", "Go package name, default is dir name of output file")
	genCmd.Flags().StringVarP(&opts.varName, "var", "n", "Rules", "Go variable name")
	return genCmd
}

func runGen(cfg *config.Config, inFileName string, opts *genOptions) error {
	if e := cfg.Validate(); e != nil {
		return e
	}

	in, e := ruledef.ParseFile(inFileName, cfg.RuleDefOptions()...)
	if e != nil {
		return e
	}

	outFileName := opts.outFileName
	if outFileName == "" {
		ext := filepath.Ext(inFileName)
		outFileName = inFileName[:len(inFileName)-len(ext)] + ".go"
	}

	packageName := opts.packageName
	if packageName == "" {
		dir, e := filepath.Abs(outFileName)
		if e != nil {
			return rulematch.FormatError(genError, "%s", e.Error())
		}
		packageName = filepath.Base(filepath.Dir(dir))
	}

	content, e := makeGo(in.Grammar, packageName, opts.varName)
	if e != nil {
		return e
	}

	if e = os.WriteFile(outFileName, content, 0o666); e != nil {
		return rulematch.FormatError(genError, "cannot write %s: %s", outFileName, e.Error())
	}
	return nil
}

func makeGo(g *grammar.Grammar, packageName, varName string) ([]byte, error) {
	if !identRe.MatchString(packageName) {
		return nil, rulematch.FormatError(genError, "invalid package name: %s", packageName)
	}
	if !identRe.MatchString(varName) {
		return nil, rulematch.FormatError(genError, "invalid variable name: %s", varName)
	}

	var buffer bytes.Buffer

	buffer.WriteString("// Code generated with rulematch gen.\n\n" +
		"package " + packageName + "\n\n" +
		"import \"github.com/ava12/rulematch/grammar\"\n\n" +
		"var " + varName + " = map[grammar.RuleID]grammar.Production{\n")

	for _, id := range g.IDs() {
		p, _ := g.Lookup(id)
		buffer.WriteString(fmt.Sprintf("\t%d: ", id))
		if p.IsTerminal() {
			buffer.WriteString(fmt.Sprintf("grammar.Terminal(%s),\n", strconv.QuoteRune(p.Char)))
			continue
		}

		buffer.WriteString("grammar.NonTerminal(")
		for i, alt := range p.Alternatives {
			if i > 0 {
				buffer.WriteString(", ")
			}
			buffer.WriteString("grammar.Alt(")
			for j, ref := range alt {
				if j > 0 {
					buffer.WriteString(", ")
				}
				buffer.WriteString(strconv.Itoa(int(ref)))
			}
			buffer.WriteString(")")
		}
		buffer.WriteString("),\n")
	}

	buffer.WriteString("}\n")
	return buffer.Bytes(), nil
}
