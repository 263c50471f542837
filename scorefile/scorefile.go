package scorefile

import (
	"bytes"
	"os"
	"unicode/utf8"

	"github.com/jsphweid/engraver/fraction"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/score"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

const MaxTitleRunes = 64

// Document is the on-disk form of a score. Channels are stored as space
// separated marking tokens, an empty string being a whole measure rest.
type Document struct {
	Title      string       `yaml:"title"`
	Meta       Meta         `yaml:"meta"`
	Style      Style        `yaml:"style,omitempty"`
	Instrument []Instrument `yaml:"instrument,omitempty"`
	Movement   []Movement   `yaml:"movement"`
}

type Arranger struct {
	Name     string `yaml:"name"`
	Ensemble string `yaml:"ensemble,omitempty"`
}

type Meta struct {
	Composer   string     `yaml:"composer,omitempty"`
	Subtitle   string     `yaml:"subtitle,omitempty"`
	Number     uint32     `yaml:"number,omitempty"`
	Lyricist   string     `yaml:"lyricist,omitempty"`
	Translator string     `yaml:"translator,omitempty"`
	Performers string     `yaml:"performers,omitempty"`
	Arranger   []Arranger `yaml:"arranger,omitempty"`
	Revised    []string   `yaml:"revised,omitempty"`
	Licenses   []string   `yaml:"licenses,omitempty"`
	Grade      uint8      `yaml:"grade,omitempty"`
	Movement   []string   `yaml:"movement,omitempty"`
}

type SigStyle struct {
	Tempo      string `yaml:"tempo,omitempty"`
	TimeSymbol bool   `yaml:"time_symbol,omitempty"`
	SwingText  string `yaml:"swing_text,omitempty"`
}

type Style struct {
	Sig []SigStyle `yaml:"sig,omitempty"`
}

type Instrument struct {
	Waveform string `yaml:"waveform"`
	Mute     string `yaml:"mute,omitempty"`
}

type Sig struct {
	Key   uint8  `yaml:"key"`
	Time  string `yaml:"time"`
	Tempo uint16 `yaml:"tempo"`
	Swing *uint8 `yaml:"swing,omitempty"`
}

type SigRef struct {
	Index uint32 `yaml:"index"`
	Beat  *uint8 `yaml:"beat,omitempty"`
}

type Chan struct {
	Notes string `yaml:"notes"`
	Lyric string `yaml:"lyric,omitempty"`
}

type Bar struct {
	Sig    *SigRef  `yaml:"sig,omitempty"`
	Chan   []Chan   `yaml:"chan"`
	Repeat []string `yaml:"repeat,omitempty"`
}

type Movement struct {
	Sig []Sig `yaml:"sig"`
	Bar []Bar `yaml:"bar"`
}

func nfc(s string) string {
	return norm.NFC.String(s)
}

func nfcAll(ss []string) []string {
	if ss == nil {
		return nil
	}
	res := make([]string, len(ss))
	for i, s := range ss {
		res[i] = nfc(s)
	}
	return res
}

func FromScore(s *score.Score) Document {
	doc := Document{
		Title: s.Title,
		Meta: Meta{
			Composer:   s.Meta.Composer,
			Subtitle:   s.Meta.Subtitle,
			Number:     s.Meta.Number,
			Lyricist:   s.Meta.Lyricist,
			Translator: s.Meta.Translator,
			Performers: s.Meta.Performers,
			Revised:    s.Meta.Revised,
			Licenses:   s.Meta.Licenses,
			Grade:      s.Meta.Grade,
			Movement:   s.Meta.Movement,
		},
	}
	for _, a := range s.Meta.Arranger {
		doc.Meta.Arranger = append(doc.Meta.Arranger, Arranger(a))
	}
	for _, st := range s.Style.Sig {
		doc.Style.Sig = append(doc.Style.Sig, SigStyle(st))
	}
	for _, inst := range s.Instrument {
		doc.Instrument = append(doc.Instrument, Instrument(inst))
	}
	for _, mv := range s.Movement {
		m := Movement{}
		for _, sig := range mv.Sig {
			m.Sig = append(m.Sig, Sig(sig))
		}
		for _, bar := range mv.Bar {
			b := Bar{Repeat: bar.Repeat}
			if bar.Sig != nil {
				ref := SigRef(*bar.Sig)
				b.Sig = &ref
			}
			for _, ch := range bar.Chan {
				b.Chan = append(b.Chan, Chan{Notes: model.FormatChannel(ch.Notes), Lyric: ch.Lyric})
			}
			m.Bar = append(m.Bar, b)
		}
		doc.Movement = append(doc.Movement, m)
	}
	return doc
}

// Score converts a document into a score. Text fields are normalized to NFC.
// A document without movements gets the default single measure movement.
func (d Document) Score() (*score.Score, error) {
	s := score.New(1)
	if d.Title != "" {
		s.Title = nfc(d.Title)
	}
	if utf8.RuneCountInString(s.Title) > MaxTitleRunes {
		return nil, errors.Errorf("title longer than %v characters", MaxTitleRunes)
	}

	s.Meta = score.Meta{
		Composer:   nfc(d.Meta.Composer),
		Subtitle:   nfc(d.Meta.Subtitle),
		Number:     d.Meta.Number,
		Lyricist:   nfc(d.Meta.Lyricist),
		Translator: nfc(d.Meta.Translator),
		Performers: nfc(d.Meta.Performers),
		Revised:    nfcAll(d.Meta.Revised),
		Licenses:   nfcAll(d.Meta.Licenses),
		Grade:      d.Meta.Grade,
		Movement:   nfcAll(d.Meta.Movement),
	}
	if s.Meta.Composer == "" {
		s.Meta.Composer = score.DefaultMeta().Composer
	}
	for _, a := range d.Meta.Arranger {
		s.Meta.Arranger = append(s.Meta.Arranger, score.Arranger{Name: nfc(a.Name), Ensemble: nfc(a.Ensemble)})
	}
	s.Style = score.Style{}
	for _, st := range d.Style.Sig {
		s.Style.Sig = append(s.Style.Sig, score.SigStyle(st))
	}
	if len(d.Instrument) > 0 {
		s.Instrument = nil
		for _, inst := range d.Instrument {
			s.Instrument = append(s.Instrument, score.Instrument(inst))
		}
	}

	if len(d.Movement) == 0 {
		return s, nil
	}
	s.Movement = nil
	for i, mv := range d.Movement {
		m := score.Movement{}
		for _, sig := range mv.Sig {
			m.Sig = append(m.Sig, score.Sig(sig))
		}
		if len(m.Sig) == 0 {
			m.Sig = []score.Sig{score.DefaultSig()}
		}
		for j, bar := range mv.Bar {
			if j > 0 && len(bar.Chan) != len(mv.Bar[0].Chan) {
				return nil, errors.Errorf("movement %v bar %v has %v channels, expected %v",
					i, j, len(bar.Chan), len(mv.Bar[0].Chan))
			}
			measure := score.Measure{Repeat: bar.Repeat}
			if bar.Sig != nil {
				if int(bar.Sig.Index) >= len(m.Sig) {
					return nil, errors.Errorf("movement %v bar %v refers to missing signature %v", i, j, bar.Sig.Index)
				}
				ref := score.SigRef(*bar.Sig)
				measure.Sig = &ref
			}
			for k, ch := range bar.Chan {
				notes, err := model.ParseChannel(ch.Notes)
				if err != nil {
					return nil, errors.Wrapf(err, "movement %v bar %v channel %v", i, j, k)
				}
				if len(notes) > 0 {
					if total := score.Duration(notes); !total.Equal(fraction.Whole) {
						return nil, errors.Errorf("movement %v bar %v channel %v lasts %v", i, j, k, total)
					}
				}
				measure.Chan = append(measure.Chan, score.Channel{Notes: notes, Lyric: nfc(ch.Lyric)})
			}
			if len(measure.Chan) == 0 {
				measure.Chan = make([]score.Channel, 1)
			}
			m.Bar = append(m.Bar, measure)
		}
		if len(m.Bar) == 0 {
			m.Bar = []score.Measure{{Chan: make([]score.Channel, 1)}}
		}
		s.Movement = append(s.Movement, m)
	}
	s.RefreshCache()
	return s, nil
}

func Marshal(s *score.Score) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FromScore(s)); err != nil {
		return nil, errors.Wrap(err, "could not encode score")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "could not encode score")
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (*score.Score, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "could not decode score")
	}
	return doc.Score()
}

func Load(path string) (*score.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %v", path)
	}
	s, err := Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load %v", path)
	}
	return s, nil
}

func Save(path string, s *score.Score) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "could not write %v", path)
	}
	return nil
}
