package epub

import "path"

// options configures Open. The zero value is the default configuration,
// the same pattern the teacher threads validate.Options through
// validate.Validate.
type options struct {
	maxStackDepth int
	skipMimetype  bool
}

// Option configures a call to Open.
type Option func(*options)

// WithMaxStackDepth overrides the OPF parser's bounded parse-context
// stack depth (spec.md §4.4 names 64 as the example limit).
func WithMaxStackDepth(n int) Option {
	return func(o *options) { o.maxStackDepth = n }
}

// WithoutMimetypeCheck skips the bootstrap mimetype validation (spec.md
// §4.2 calls it "optional but recommended"). Mostly useful against
// archives produced by tools that don't store the mimetype entry first.
func WithoutMimetypeCheck() Option {
	return func(o *options) { o.skipMimetype = true }
}

// Open opens path as an EPUB archive, validates its mimetype, resolves
// the OPF path via the container resolver, and parses the OPF into a
// ready-to-query Publication (spec.md §2's flow). On any error the
// archive handle, if opened, is released before returning.
func Open(archivePath string, opts ...Option) (*Publication, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a, err := openArchive(archivePath)
	if err != nil {
		return nil, err
	}

	p := &Publication{
		path:       archivePath,
		archive:    a,
		entryCount: a.entryCount(),
	}

	if !o.skipMimetype {
		if err := validateMimetype(a); err != nil {
			a.close()
			return nil, err
		}
	}

	opfPath, allRootfiles, err := resolveContainer(a)
	if err != nil {
		a.close()
		return nil, err
	}
	p.opfPath = opfPath
	p.allRootfiles = allRootfiles

	opfData, err := a.readEntireEntry(opfPath)
	if err != nil {
		a.close()
		return nil, err
	}

	metadata, manifest, spine, err := parseOPF(opfData, path.Dir(opfPath), o.maxStackDepth, &p.diagnostics)
	if err != nil {
		a.close()
		return nil, err
	}
	p.metadata = metadata
	p.manifest = manifest
	p.spine = spine

	return p, nil
}
