package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jkataja/tahti"
	"github.com/jkataja/tahti/engine"
	"github.com/jkataja/tahti/fixtures"
	"github.com/jkataja/tahti/midifile"
	"github.com/jkataja/tahti/persistence"
	"github.com/jkataja/tahti/version"
)

func main() {
	write := flag.Bool("w", false, "Do not output to standard output; (over)write files on disk instead.")
	demo := flag.Bool("demo", false, "Process the built-in demo project instead of reading input files.")
	newProject := flag.Bool("n", false, "Process a freshly created empty project instead of reading input files.")
	defaultsPath := flag.String("c", "", "Path to a YAML defaults file seeding new projects (title, bpm, sample_rate).")
	jsonOut := flag.Bool("j", false, "Output the project as a .json file, to standard output unless otherwise specified.")
	yamlOut := flag.Bool("y", false, "Output the project as a .yml file, to standard output unless otherwise specified.")
	midiOut := flag.Bool("m", false, "Output the project's note content as a .mid file, to standard output unless otherwise specified.")
	parityOut := flag.Bool("p", false, "Output the parity fingerprint report as a .parity.json file, to standard output unless otherwise specified.")
	directory := flag.String("d", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the same directory where the original project file is.")
	showVersion := flag.Bool("v", false, "Print version and exit.")
	help := flag.Bool("h", false, "Show help.")
	flag.Usage = printUsage
	flag.Parse()
	if *showVersion {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if (flag.NArg() == 0 && !*demo && !*newProject) || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*jsonOut && !*yamlOut && !*midiOut && !*parityOut {
		*parityOut = true // with nothing else to output, report the fingerprint
	}
	process := func(filename string, project tahti.Project) error {
		output := func(extension string, contents []byte) error {
			if !*write {
				os.Stdout.Write(contents)
				return nil
			}
			dir, name := filepath.Split(filename)
			if *directory != "" {
				dir = *directory
			}
			name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
			f := filepath.Join(dir, name)
			original, err := os.ReadFile(f)
			if err == nil && bytes.Equal(original, contents) {
				return nil // no need to update
			}
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
			if err := os.WriteFile(f, contents, 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		e := engine.New(project)
		if *jsonOut {
			snapshot := e.Project()
			contents, err := persistence.Encode(&snapshot, "project.json")
			if err != nil {
				return fmt.Errorf("could not serialize the project as json: %v", err)
			}
			if err := output(".json", contents); err != nil {
				return fmt.Errorf("error outputting json file: %v", err)
			}
		}
		if *yamlOut {
			snapshot := e.Project()
			contents, err := persistence.Encode(&snapshot, "project.yml")
			if err != nil {
				return fmt.Errorf("could not serialize the project as yaml: %v", err)
			}
			if err := output(".yml", contents); err != nil {
				return fmt.Errorf("error outputting yaml file: %v", err)
			}
		}
		if *midiOut {
			snapshot := e.Project()
			contents, err := midifile.Bytes(&snapshot)
			if err != nil {
				return fmt.Errorf("could not render the project as midi: %v", err)
			}
			if err := output(".mid", contents); err != nil {
				return fmt.Errorf("error outputting midi file: %v", err)
			}
		}
		if *parityOut {
			report, err := e.MeasureParity()
			if err != nil {
				return fmt.Errorf("could not fingerprint the project: %v", err)
			}
			contents, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("could not serialize the parity report: %v", err)
			}
			contents = append(contents, '\n')
			if err := output(".parity.json", contents); err != nil {
				return fmt.Errorf("error outputting parity report: %v", err)
			}
		}
		return nil
	}
	retval := 0
	if *newProject {
		defaults := persistence.BuiltinDefaults()
		if *defaultsPath != "" {
			var err error
			if defaults, err = persistence.LoadDefaults(*defaultsPath); err != nil {
				fmt.Fprintf(os.Stderr, "Could not load defaults from %v: %v\n", *defaultsPath, err)
				os.Exit(1)
			}
		}
		if err := process("untitled.json", defaults.NewProject()); err != nil {
			fmt.Fprintf(os.Stderr, "Could not process the new project: %v\n", err)
			retval = 1
		}
	}
	if *demo {
		if err := process("demo.json", fixtures.DemoProject()); err != nil {
			fmt.Fprintf(os.Stderr, "Could not process the demo project: %v\n", err)
			retval = 1
		}
	}
	for _, param := range flag.Args() {
		project, err := persistence.Load(param)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load file %v: %v\n", param, err)
			retval = 1
			continue
		}
		if err := process(param, project); err != nil {
			fmt.Fprintf(os.Stderr, "Could not process file %v: %v\n", param, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Tahti command line utility for processing .json/.yml project files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
