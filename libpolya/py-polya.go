package libpolya

import (
	"math/big"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/go-python/gpython/py"
)

// GroupBuilder builds the group acting on n points; see the actions package.
// It is forward declared so that the actions package can register itself without an import cycle.
type GroupBuilder func(n int) (*gopolya.Group, error)

var pyActions = map[string]GroupBuilder{}

// RegisterPyAction makes a group action callable from the polya gpython module as name(n).
// Must be called before any gpython context imports the module (typically from an init func).
func RegisterPyAction(name string, build GroupBuilder) {
	pyActions[name] = build
}

// groupFromObj reads a group given as a sequence of elements, each a sequence of cycles, each a sequence of ints.
// The domain size is the number of points in the first element; ValidateShape() enforces it for all others.
func groupFromObj(obj py.Object) (*gopolya.Group, error) {
	elems, err := py.SequenceList(obj)
	if err != nil {
		return nil, err
	}

	G := &gopolya.Group{
		Name:     "py",
		Elements: make([]gopolya.Cycles, 0, len(elems.Items)),
	}

	for _, elemObj := range elems.Items {
		cycles, err := py.SequenceList(elemObj)
		if err != nil {
			return nil, err
		}
		g := make(gopolya.Cycles, 0, len(cycles.Items))
		for _, cycleObj := range cycles.Items {
			points, err := py.SequenceList(cycleObj)
			if err != nil {
				return nil, err
			}
			cycle := make(gopolya.Cycle, len(points.Items))
			for i, ptObj := range points.Items {
				pt, err := py.GetInt(ptObj)
				if err != nil {
					return nil, err
				}
				cycle[i] = int(pt)
			}
			g = append(g, cycle)
		}
		G.Elements = append(G.Elements, g)
	}

	if len(G.Elements) > 0 {
		G.DomainSize = G.Elements[0].NumPoints()
	}
	return G, nil
}

func groupToObj(G *gopolya.Group) py.Object {
	elems := make([]py.Object, len(G.Elements))
	for i, g := range G.Elements {
		cycles := make([]py.Object, len(g))
		for j, cycle := range g {
			points := make([]py.Object, len(cycle))
			for k, pt := range cycle {
				points[k] = py.Int(pt)
			}
			cycles[j] = py.NewListFromItems(points)
		}
		elems[i] = py.NewListFromItems(cycles)
	}
	return py.NewListFromItems(elems)
}

func bigToObj(x *big.Int) py.Object {
	return (*py.BigInt)(x).MaybeInt()
}

// colorsArg returns args[i] as a color count, or the default if absent.
func colorsArg(args py.Tuple, i int) (int, error) {
	if len(args) <= i {
		return gopolya.DefaultColors, nil
	}
	k, err := py.GetInt(args[i])
	if err != nil {
		return 0, err
	}
	return int(k), nil
}

func valueError(err error) error {
	return py.ExceptionNewf(py.ValueError, "%v", err)
}

type groupCount func(G *gopolya.Group, k int) (*big.Int, error)

func ph_count(count groupCount) func(module py.Object, args py.Tuple) (py.Object, error) {
	return func(module py.Object, args py.Tuple) (py.Object, error) {
		if len(args) < 1 {
			return nil, py.ExceptionNewf(py.TypeError, "expected a group argument")
		}
		G, err := groupFromObj(args[0])
		if err != nil {
			return nil, err
		}
		k, err := colorsArg(args, 1)
		if err != nil {
			return nil, err
		}
		x, err := count(G, k)
		if err != nil {
			return nil, valueError(err)
		}
		return bigToObj(x), nil
	}
}

func ph_action(build GroupBuilder) func(module py.Object, args py.Tuple) (py.Object, error) {
	return func(module py.Object, args py.Tuple) (py.Object, error) {
		var nObj py.Object
		err := py.ParseTuple(args, "i", &nObj)
		if err != nil {
			return nil, err
		}
		G, err := build(int(nObj.(py.Int)))
		if err != nil {
			return nil, valueError(err)
		}
		return groupToObj(G), nil
	}
}

func ph_ParseGroup(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "expected a group expression")
	}
	expr, ok := args[0].(py.String)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected str (got %v)", args[0].Type().Name)
	}
	n := 0
	if len(args) > 1 {
		nObj, err := py.GetInt(args[1])
		if err != nil {
			return nil, err
		}
		n = int(nObj)
	}
	G, err := ParseGroup(string(expr), n)
	if err != nil {
		return nil, valueError(err)
	}
	return groupToObj(G), nil
}

func ph_ValidateGroup(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "expected a group argument")
	}
	G, err := groupFromObj(args[0])
	if err != nil {
		return nil, err
	}
	if err = ValidateGroup(G); err != nil {
		return nil, valueError(err)
	}
	return py.None, nil
}

// RegisterPyModule registers the "polya" gpython module.
// Call it once, after all RegisterPyAction() calls and before any gpython context is created.
func RegisterPyModule() {
	methods := []*py.Method{
		py.MustNewMethod("cycle_index", ph_count(CycleIndex), 0, "cycle_index(group, k=2) -> number of k-colorings up to symmetry"),
		py.MustNewMethod("asymmetric_colorings", ph_count(AsymmetricColorings), 0, "asymmetric_colorings(group, k=2) -> number of k-colorings with no symmetries in group"),
		py.MustNewMethod("parse_group", ph_ParseGroup, 0, "parse_group(expr, n=0) -> group read from cycle notation"),
		py.MustNewMethod("validate_group", ph_ValidateGroup, 0, "validate_group(group) raises ValueError if group is not a complete permutation group"),
	}
	for name, build := range pyActions {
		methods = append(methods, py.MustNewMethod(name, ph_action(build), 0, name+"(n) -> group action as a list of elements in cycle form"))
	}

	globals := py.StringDict{
		"LIB_VERSION": py.String(LIB_VERSION),
	}

	py.RegisterModule(&py.ModuleImpl{
		Info: py.ModuleInfo{
			Name: "polya",
			Doc:  "coloring counts up to symmetry",
		},
		Methods: methods,
		Globals: globals,
	})
}
