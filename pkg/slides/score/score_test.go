package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/slideshow/pkg/errors"
	"github.com/matzehuels/slideshow/pkg/slides"
	"github.com/matzehuels/slideshow/pkg/slides/assemble"
	"github.com/matzehuels/slideshow/pkg/slides/sequence"
)

func h(id int, tags ...uint32) slides.Photo {
	return slides.Photo{ID: id, Orientation: slides.Horizontal, Tags: slides.NewTagSet(tags...)}
}

func v(id int, tags ...uint32) slides.Photo {
	return slides.Photo{ID: id, Orientation: slides.Vertical, Tags: slides.NewTagSet(tags...)}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		slides  []slides.Slide
		total   int
		photoID int
		rule    string
	}{
		{
			name:    "vertical alone",
			slides:  []slides.Slide{slides.FromOne(v(0, 1))},
			total:   1,
			photoID: 0,
			rule:    RuleSingleNotHorizontal,
		},
		{
			name:    "horizontal in pair",
			slides:  []slides.Slide{slides.FromTwo(v(0, 1), h(1, 2))},
			total:   2,
			photoID: 1,
			rule:    RulePairNotVertical,
		},
		{
			name:    "same photo twice in pair",
			slides:  []slides.Slide{slides.FromTwo(v(0, 1), v(0, 1))},
			total:   1,
			photoID: 0,
			rule:    RulePairSamePhoto,
		},
		{
			name:    "duplicate across slides",
			slides:  []slides.Slide{slides.FromOne(h(0, 1)), slides.FromOne(h(0, 1))},
			total:   2,
			photoID: 0,
			rule:    RuleDuplicate,
		},
		{
			name:    "out of range",
			slides:  []slides.Slide{slides.FromOne(h(5, 1))},
			total:   1,
			photoID: 5,
			rule:    RuleOutOfRange,
		},
		{
			name:    "missing photo",
			slides:  []slides.Slide{slides.FromOne(h(0, 1))},
			total:   2,
			photoID: 1,
			rule:    RuleMissing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.slides, tt.total)
			require.True(t, errs.Is(err, errs.ErrCodeConsistencyViolation))
			viol, ok := errs.AsViolation(err)
			require.True(t, ok)
			require.Equal(t, tt.photoID, viol.PhotoID)
			require.Equal(t, tt.rule, viol.Rule)
		})
	}
}

func TestValidatePhotos(t *testing.T) {
	photos := []slides.Photo{h(0, 1), h(2, 2), v(3, 3), v(5, 4)}
	show := []slides.Slide{slides.FromOne(photos[1]), slides.FromTwo(photos[3], photos[2]), slides.FromOne(photos[0])}
	require.NoError(t, ValidatePhotos(show, photos))

	err := ValidatePhotos(append(show, slides.FromOne(h(1, 9))), photos)
	viol, ok := errs.AsViolation(err)
	require.True(t, ok)
	require.Equal(t, 1, viol.PhotoID)
	require.Equal(t, RuleOutOfRange, viol.Rule)

	err = ValidatePhotos(show[:2], photos)
	viol, ok = errs.AsViolation(err)
	require.True(t, ok)
	require.Equal(t, 0, viol.PhotoID)
	require.Equal(t, RuleMissing, viol.Rule)

	got, err := EvaluatePhotos(show, photos)
	require.NoError(t, err)
	require.Equal(t, Score(show), got)
	neg := h(-2, 1)
	err = ValidatePhotos([]slides.Slide{slides.FromOne(neg)}, []slides.Photo{neg})
	viol, ok = errs.AsViolation(err)
	require.True(t, ok)
	require.Equal(t, -2, viol.PhotoID)
	require.Equal(t, RuleOutOfRange, viol.Rule)
}

func TestScore(t *testing.T) {
	s := []slides.Slide{
		slides.FromOne(h(0, 1, 2, 3)),
		slides.FromOne(h(1, 2, 3, 4, 5)),
		slides.FromTwo(v(2, 4), v(3, 5, 6)),
	}
	// {1,2,3}->{2,3,4,5}: c=2, |A|-c=1 -> 1
	// {2,3,4,5}->{4,5,6}: c=2, |A|-c=2 -> 2
	require.Equal(t, []int{1, 2}, Transitions(s))
	require.Equal(t, 3, Score(s))
	require.Equal(t, Score(s), Score(s))

	got, err := Evaluate(s, 4)
	require.NoError(t, err)
	require.Equal(t, 3, got)
}

func TestScoreShort(t *testing.T) {
	require.Equal(t, 0, Score(nil))
	require.Empty(t, Transitions(nil))

	one := []slides.Slide{slides.FromOne(h(0, 1, 2))}
	require.Equal(t, 0, Score(one))
	require.Empty(t, Transitions(one))
}

func TestEvaluateInvalid(t *testing.T) {
	_, err := Evaluate([]slides.Slide{slides.FromOne(v(0, 1))}, 1)
	require.Error(t, err)
}

func solve(t *testing.T, photos []slides.Photo, seed uint64) ([]slides.Slide, int) {
	t.Helper()
	placed, err := sequence.Sequence(context.Background(), photos, sequence.Options{Seed: seed})
	require.NoError(t, err)
	s, err := assemble.Slides(placed)
	require.NoError(t, err)
	got, err := Evaluate(s, len(photos))
	require.NoError(t, err)
	return s, got
}

func TestEndToEnd(t *testing.T) {
	photos := []slides.Photo{
		h(0, 1, 2),
		h(1, 2, 3),
		v(2, 1),
		v(3, 1),
	}

	for _, seed := range []uint64{0, 1, 42, 1234} {
		s, _ := solve(t, photos, seed)
		require.Len(t, s, 3)

		var pair *slides.Slide
		for i := range s {
			if s[i].IsPair() {
				require.Nil(t, pair, "seed %d: more than one pair", seed)
				pair = &s[i]
			}
		}
		require.NotNil(t, pair)
		require.ElementsMatch(t, []int{2, 3}, pair.IDs())
	}
}

func TestEndToEndEmpty(t *testing.T) {
	s, got := solve(t, nil, 42)
	require.Empty(t, s)
	require.Equal(t, 0, got)
}

func TestEndToEndSingle(t *testing.T) {
	s, got := solve(t, []slides.Photo{h(0, 7, 8)}, 42)
	require.Len(t, s, 1)
	require.Equal(t, []int{0}, s[0].IDs())
	require.Equal(t, 0, got)
}
