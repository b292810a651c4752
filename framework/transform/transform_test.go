package transform_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-formbind/framework/binding"
	"github.com/km-arc/go-formbind/framework/transform"
)

type Address struct {
	City string `form:"city"`
	Zip  string `json:"zip,omitempty"`
}

type Signup struct {
	Email   string                   `form:"email"`
	Age     int                      `json:"age"`
	Nick    binding.Optional[string] `form:"nick"`
	Note    *string                  `form:"note"`
	Home    Address                  `form:"home"`
	Work    *Address                 `form:"work"`
	Secret  string                   `form:"-"`
	Tags    []string
	private string
}

func tree(entries ...binding.Entry) *binding.BoundTree { return binding.NewBoundTree(entries...) }

func TestTransform_FillsStruct(t *testing.T) {
	t.Parallel()

	in := tree(
		binding.Entry{Name: "email", Value: "a@b.io"},
		binding.Entry{Name: "age", Value: 30},
		binding.Entry{Name: "tags", Value: []string{"go", "web"}},
		binding.Entry{Name: "nick", Value: "ally"},
		binding.Entry{Name: "home", Value: tree(binding.Entry{Name: "city", Value: "Oslo"}, binding.Entry{Name: "zip", Value: "0150"})},
		binding.Entry{Name: "work", Value: tree(binding.Entry{Name: "city", Value: "Bergen"})},
		binding.Entry{Name: "secret", Value: "leak"},
		binding.Entry{Name: "unknown", Value: 1},
	)

	got, err := transform.To[Signup](in, nil)
	require.NoError(t, err)

	want := Signup{
		Email: "a@b.io",
		Age:   30,
		Tags:  []string{"go", "web"},
		Nick:  binding.Some("ally"),
		Home:  Address{City: "Oslo", Zip: "0150"},
		Work:  &Address{City: "Bergen"},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Signup{}, binding.Optional[string]{})); diff != "" {
		t.Errorf("signup mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_AbsentPropertiesStayZero(t *testing.T) {
	t.Parallel()

	got, err := transform.To[Signup](tree(
		binding.Entry{Name: "email", Value: "a@b.io"},
		binding.Entry{Name: "nick", Value: binding.None[string]()},
		binding.Entry{Name: "work", Value: (*binding.BoundTree)(nil)},
	), nil)
	require.NoError(t, err)
	assert.Equal(t, "a@b.io", got.Email)
	assert.Zero(t, got.Age)
	assert.False(t, got.Nick.IsPresent())
	assert.Nil(t, got.Note)
	assert.Nil(t, got.Work)
}

func TestTransform_Pointers(t *testing.T) {
	t.Parallel()

	p, err := transform.To[*int](5, nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 5, *p)

	n := 7
	v, err := transform.To[int](&n, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	s, err := transform.To[*Signup](tree(binding.Entry{Name: "email", Value: "x@y.z"}), nil)
	require.NoError(t, err)
	assert.Equal(t, "x@y.z", s.Email)

	var nilPtr *int
	v, err = transform.To[int](nilPtr, nil)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestTransform_Optionals(t *testing.T) {
	t.Parallel()

	s, err := transform.To[string](binding.Some("x"), nil)
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	s, err = transform.To[string](binding.None[string](), nil)
	require.NoError(t, err)
	assert.Empty(t, s)

	o, err := transform.To[binding.Optional[int]](3, nil)
	require.NoError(t, err)
	assert.Equal(t, binding.Some(3), o)

	o, err = transform.To[binding.Optional[int]](nil, nil)
	require.NoError(t, err)
	assert.False(t, o.IsPresent())
}

func TestTransform_Containers(t *testing.T) {
	t.Parallel()

	r := transform.NewRegistry()
	transform.RegisterFunc(r, func(n int) (int64, error) { return int64(n), nil })

	list, err := transform.To[[]int64]([]int{1, 2, 3}, r)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, list)

	arr, err := transform.To[[4]int64]([]int{1, 2}, r)
	require.NoError(t, err)
	assert.Equal(t, [4]int64{1, 2}, arr)

	_, err = transform.To[[1]int64]([]int{1, 2}, r)
	assert.ErrorIs(t, err, transform.ErrTypeMismatch)

	m, err := transform.To[map[string]int64](map[string]int{"a": 1}, r)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 1}, m)

	fromTree, err := transform.To[map[string]any](tree(binding.Entry{Name: "a", Value: 1}), r)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, fromTree)
}

func TestTransform_Mismatches(t *testing.T) {
	t.Parallel()

	_, err := transform.To[[]int](map[string]int{"a": 1}, nil)
	assert.ErrorIs(t, err, transform.ErrTypeMismatch)

	_, err = transform.To[map[string]int]([]int{1}, nil)
	assert.ErrorIs(t, err, transform.ErrTypeMismatch)

	_, err = transform.To[[]string](tree(binding.Entry{Name: "a", Value: "x"}), nil)
	assert.ErrorIs(t, err, transform.ErrTypeMismatch)

	_, err = transform.To[int]("12", nil)
	assert.ErrorIs(t, err, transform.ErrTypeMismatch)
	assert.ErrorIs(t, err, transform.ErrNoTransformer)
}

func TestTransform_RegisteredContainerSource(t *testing.T) {
	t.Parallel()

	type Code string

	r := transform.NewRegistry()
	transform.RegisterFunc(r, func(b [2]byte) (Code, error) { return Code(b[:]), nil })

	code, err := transform.To[Code]([2]byte{'o', 'k'}, r)
	require.NoError(t, err)
	assert.Equal(t, Code("ok"), code)

	_, err = transform.To[Code]([3]byte{'n', 'o', 'p'}, r)
	assert.ErrorIs(t, err, transform.ErrTypeMismatch)
}

func TestTransform_PropertyError(t *testing.T) {
	t.Parallel()

	_, err := transform.To[Signup](tree(binding.Entry{Name: "age", Value: "thirty"}), transform.NewRegistry())
	require.Error(t, err)

	var perr *transform.PropertyError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "age", perr.Name)
	assert.Equal(t, reflect.TypeOf((*Signup)(nil)).Elem(), perr.Type)
	assert.ErrorIs(t, err, transform.ErrNoTransformer)
}

func TestTransform_UsesRegisteredScalars(t *testing.T) {
	t.Parallel()

	type Event struct {
		Cost string `form:"cost"`
	}
	r := transform.NewRegistry()
	transform.RegisterFunc(r, func(m Money) (string, error) { return "cents", nil })

	got, err := transform.To[Event](tree(binding.Entry{Name: "cost", Value: Price{}}), r)
	require.NoError(t, err)
	assert.Equal(t, "cents", got.Cost)
}

func TestTransform_TimestampsBecomeTimes(t *testing.T) {
	t.Parallel()

	type Booking struct {
		Day  time.Time                   `form:"day"`
		From *time.Time                  `form:"from"`
		Raw  binding.Timestamp           `form:"raw"`
		Back binding.Optional[time.Time] `form:"back"`
	}

	group := binding.Group(
		binding.Named("day", binding.Date()),
		binding.Named("from", binding.OptionalOf(binding.Time())),
		binding.Named("raw", binding.Date("%d.%m.%Y")),
		binding.Named("back", binding.OptionalOf(binding.DateTime())),
	)

	got, errs, err := transform.BindTo[Booking](binding.NewBinder(nil), group, map[string]string{
		"day":  "2024-03-01",
		"from": "09:30:00",
		"raw":  "02.03.2024",
	}, nil)
	require.NoError(t, err)
	require.Empty(t, errs)

	assert.True(t, got.Day.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)), got.Day)
	require.NotNil(t, got.From)
	assert.Equal(t, 9, got.From.Hour())
	assert.Equal(t, "02.03.2024", got.Raw.String())
	assert.False(t, got.Back.IsPresent())

	// A registry without the time.Time entry cannot unwrap the embedding.
	_, err = transform.To[time.Time](binding.NewTimestamp(got.Day, binding.DateLayout), transform.NewRegistry())
	assert.ErrorIs(t, err, transform.ErrNoTransformer)
}

func TestBindTo(t *testing.T) {
	t.Parallel()

	group := binding.Group(
		binding.Named("email", binding.Text().Constraint(binding.Required(), binding.Email())),
		binding.Named("age", binding.Int()),
		binding.Named("tags", binding.ListOf(binding.Text())),
		binding.Named("nick", binding.OptionalOf(binding.Text())),
		binding.Named("home", binding.Group(binding.Named("city", binding.Text()))),
	)
	b := binding.NewBinder(nil)

	got, errs, err := transform.BindTo[Signup](b, group, map[string]string{
		"email":     "a@b.io",
		"age":       "41",
		"tags[0]":   "go",
		"home.city": "Oslo",
	}, nil)
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, "a@b.io", got.Email)
	assert.Equal(t, 41, got.Age)
	assert.Equal(t, []string{"go"}, got.Tags)
	assert.False(t, got.Nick.IsPresent())
	assert.Equal(t, "Oslo", got.Home.City)

	_, errs, err = transform.BindTo[Signup](b, group, map[string]string{"age": "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "age"}, errs.Paths())
}
