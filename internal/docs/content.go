package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with rpyfmt",
		Content: topicQuickstart,
	},
	{
		Name:    "regions",
		Title:   "Embedded Python Regions",
		Summary: "Which constructs are formatted and how extents are found",
		Content: topicRegions,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "errors",
		Title:   "Diagnostics and Exit Codes",
		Summary: "Error kinds, pass-through behavior, and exit policy",
		Content: topicErrors,
	},
}

const topicQuickstart = `Quick Start
===========

rpyfmt formats the python embedded in Ren'Py scripts using black, and
leaves everything else in the file byte-for-byte untouched.

1. Make sure black is installed and on your PATH:

    rpyfmt doctor

2. Preview formatting for a script (output goes to stdout):

    rpyfmt fmt game/script.rpy

3. Rewrite files in place:

    rpyfmt fmt -w game/

4. CI check without writing:

    rpyfmt fmt --check game/

CLI Flags
---------

  rpyfmt fmt <paths>              Print formatted output to stdout
  rpyfmt fmt --stdout <paths>     Same, spelled out explicitly
  rpyfmt fmt -w <paths>           Rewrite changed files in place
  rpyfmt fmt --check <paths>      Report files that would change
  rpyfmt fmt --strict <paths>     Exit non-zero when any region fails
  rpyfmt fmt --format json ...    Emit a JSON run report (with -w or --check)
  rpyfmt fmt --line-length N ...  Override the configured line length
  rpyfmt fmt --jobs N ...         Bound worker parallelism
  rpyfmt fmt - < in.rpy           Format stdin to stdout
  rpyfmt init                     Scaffold a .rpyfmt.yaml config
  rpyfmt doctor                   Verify the engine and configuration
  rpyfmt docs [topic]             Show documentation

--check and -w are mutually exclusive; --stdout conflicts with both.
`

const topicRegions = `Embedded Python Regions
=======================

rpyfmt recognizes four introducer forms:

  $ <statement>            One-line python statement. The region is exactly
                           the remainder of that physical line; a deeper
                           indented next line is NOT part of the region.
  python:                  Block of python. Modifiers are allowed:
                           python hide:, python in <store>:.
  python early:            Early-phase python block.
  init python:             Init-phase python block, with an optional
  init <offset> python:    priority offset (init -10 python:).

Block extent
------------

A block region contains every line after the header that is blank or
indented strictly deeper than the header, and stops at the first line at or
above the header's indentation. Trailing blank lines stay host text.

The body is dedented by its common leading-whitespace prefix, formatted as
a standalone python module, and re-indented with exactly that prefix. The
header line itself is never modified.

A header that matches a python block form but breaks its grammar (content
after the colon, missing colon) aborts the whole file: region boundaries
cannot be trusted past it. The same applies to a region body that mixes
tabs and spaces under the default tab-policy.

Lines inside string literals or comments never introduce regions: the
recognizer tracks string and comment state while scanning a header line.
`

const topicConfig = `Configuration Reference
=======================

rpyfmt reads .rpyfmt.yaml, searched from the working directory upward.
The file is optional; every field has a default and a flag override.

  line-length         int     Line length for block regions. Default: 88.
  inline-line-length  int     Line length for $ statements, large so a
                              statement stays on one line. Default: 1000.
  engine              string  Formatter binary. Default: black.
  engine-args         list    Extra arguments passed verbatim.
  timeout             int     Seconds per region invocation. Default: 60.
  jobs                int     Worker bound for files and regions.
                              Default: number of CPUs.
  tab-policy          string  reject (default) or expand.
  tab-width           int     Tab stop width for expand. Default: 8.
  strict              bool    Exit non-zero when any region fails.
  exclude             list    Globs skipped when walking directories.

Tab policy
----------

With tab-policy reject, a region whose leading whitespace mixes tabs and
spaces, or keeps a tab below the common margin, is reported as
inconsistent-indentation and the file is left untouched — relative depths
would depend on a tab-width assumption. A body indented by a uniform run
of tabs dedents unambiguously and is accepted. With
tab-policy expand, tabs in leading whitespace are expanded at tab-width
stops and the region is re-indented with spaces.
`

const topicErrors = `Diagnostics and Exit Codes
==========================

Every diagnostic carries file, line, column, kind, and message. Line and
column refer to the original script, not the dedented text the engine saw.

Region-scoped (the region passes through unchanged; siblings still format):

  syntax-error    The embedded python does not parse. Reported, not fixed.
  engine-error    The engine failed: missing binary, crash, or timeout.

Document-scoped (the whole file is left untouched; other files continue):

  malformed-introducer        A python block header breaking the grammar.
  inconsistent-indentation    A region that cannot be unambiguously dedented.

Exit codes
----------

  0   Clean run. Region failures exit 0 unless strict mode is on: they are
      pass-through warnings.
  1   Any aborted or unreadable file; any region failure under --strict;
      any file that would change under --check.
`
