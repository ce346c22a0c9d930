package domain

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/agoda-com/muter/internal/adapter"
	"github.com/agoda-com/muter/internal/domain/mutagens"
	m "github.com/agoda-com/muter/internal/model"
)

// DefaultMutations lists the mutation types applied when none are requested.
var DefaultMutations = []m.MutationType{
	m.MutationArithmetic,
	m.MutationBoolean,
	m.MutationComparison,
	m.MutationLogical,
}

// Mutagen generates mutation descriptors for discovered sources. Generation
// may run in parallel; descriptor execution is the driver's concern and stays
// strictly sequential.
type Mutagen interface {
	GenerateMutations(ctx context.Context, source m.Source, mutationTypes ...m.MutationType) ([]m.Mutation, error)
	GenerateAll(ctx context.Context, sources []m.Source, threads int, mutationTypes ...m.MutationType) ([]m.Mutation, error)
}

type mutagen struct {
	goFile adapter.GoFileAdapter
	fs     adapter.SourceFSAdapter
}

// NewMutagen creates a new Mutagen instance.
func NewMutagen(goFileAdapter adapter.GoFileAdapter, fsAdapter adapter.SourceFSAdapter) Mutagen {
	return &mutagen{
		goFile: goFileAdapter,
		fs:     fsAdapter,
	}
}

var mutationGenerators = map[m.MutationType]func(ast.Node, *token.FileSet, []byte, m.Source, *int) []m.Mutation{
	m.MutationArithmetic: mutagens.GenerateArithmeticMutations,
	m.MutationBoolean:    mutagens.GenerateBooleanMutations,
	m.MutationComparison: mutagens.GenerateComparisonMutations,
	m.MutationLogical:    mutagens.GenerateLogicalMutations,
}

// GenerateMutations produces every applicable mutation for one source file,
// ordered by position in the file.
func (mg *mutagen) GenerateMutations(ctx context.Context, source m.Source, mutationTypes ...m.MutationType) ([]m.Mutation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validateSource(source); err != nil {
		return nil, err
	}

	mutationTypes, err := resolveMutationTypes(mutationTypes)
	if err != nil {
		return nil, err
	}

	content, fset, file, err := mg.loadSourceAST(source)
	if err != nil {
		return nil, err
	}

	mutations := make([]m.Mutation, 0)
	counter := 0

	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			return true
		}

		for _, mutationType := range mutationTypes {
			mutations = append(mutations, mutationGenerators[mutationType](n, fset, content, source, &counter)...)
		}

		return true
	})

	return mutations, nil
}

// GenerateAll fans generation out across sources with at most threads
// workers, then flattens results in source order, renumbers descriptor IDs,
// and binds each descriptor's apply capability.
func (mg *mutagen) GenerateAll(ctx context.Context, sources []m.Source, threads int, mutationTypes ...m.MutationType) ([]m.Mutation, error) {
	perSource := make([][]m.Mutation, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	if threads > 0 {
		group.SetLimit(threads)
	}

	for i, source := range sources {
		group.Go(func() error {
			mutations, err := mg.GenerateMutations(groupCtx, source, mutationTypes...)
			if err != nil {
				return fmt.Errorf("generate mutations for %s: %w", source.Origin.Path, err)
			}

			perSource[i] = mutations

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var all []m.Mutation
	for _, mutations := range perSource {
		all = append(all, mutations...)
	}

	renumber(all)

	if err := mg.bindApply(all); err != nil {
		return nil, err
	}

	return all, nil
}

// renumber reassigns per-type sequential IDs so that parallel generation
// still yields deterministic descriptor identifiers.
func renumber(mutations []m.Mutation) {
	counters := make(map[m.MutationType]int)
	prefixes := map[m.MutationType]string{
		m.MutationArithmetic: "ARITH",
		m.MutationBoolean:    "BOOL",
		m.MutationComparison: "CMP",
		m.MutationLogical:    "LOGIC",
	}

	for i := range mutations {
		counters[mutations[i].Type]++
		mutations[i].ID = fmt.Sprintf("%s_%d", prefixes[mutations[i].Type], counters[mutations[i].Type])
	}
}

// bindApply attaches the single-use apply capability to each descriptor. The
// closure writes the pre-computed mutated bytes over the original file,
// preserving its mode.
func (mg *mutagen) bindApply(mutations []m.Mutation) error {
	modes := make(map[m.Path]os.FileMode)

	for i := range mutations {
		mutation := &mutations[i]

		mode, ok := modes[mutation.FilePath]
		if !ok {
			info, err := mg.fs.FileInfo(mutation.FilePath)
			if err != nil {
				return fmt.Errorf("stat %s: %w", mutation.FilePath, err)
			}

			mode = info.Mode()
			modes[mutation.FilePath] = mode
		}

		path := mutation.FilePath
		code := mutation.MutatedCode

		mutation.Apply = func() error {
			return mg.fs.WriteFile(path, code, mode)
		}
	}

	return nil
}

func validateSource(source m.Source) error {
	if source.Origin == nil || source.Origin.Path == "" {
		return fmt.Errorf("missing source origin")
	}

	return nil
}

func resolveMutationTypes(mutationTypes []m.MutationType) ([]m.MutationType, error) {
	if len(mutationTypes) == 0 {
		return DefaultMutations, nil
	}

	for _, mutationType := range mutationTypes {
		if _, ok := mutationGenerators[mutationType]; !ok {
			return nil, fmt.Errorf("unsupported mutation type: %s", mutationType)
		}
	}

	return mutationTypes, nil
}

func (mg *mutagen) loadSourceAST(source m.Source) ([]byte, *token.FileSet, *ast.File, error) {
	content, err := mg.fs.ReadFile(source.Origin.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read %s: %w", source.Origin.Path, err)
	}

	fset := token.NewFileSet()

	file, err := mg.goFile.Parse(fset, string(source.Origin.Path), content)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse %s: %w", source.Origin.Path, err)
	}

	return content, fset, file, nil
}
