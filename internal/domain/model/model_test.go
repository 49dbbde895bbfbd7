package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestNullableDecoding(t *testing.T) {
	convey.Convey("Given lenient scalar fields", t, func() {
		var v struct {
			F  model.NullFloat  `json:"f"`
			I  model.NullInt    `json:"i"`
			S  model.NullString `json:"s"`
			B  model.NullBool   `json:"b"`
			M  model.NullFloat  `json:"m"`
			FS model.NullFloat  `json:"fs"`
		}

		convey.Convey("When values are well formed", func() {
			err := json.Unmarshal([]byte(`{"f":98.6,"i":7,"s":"Line Drive","b":true,"fs":"12.5"}`), &v)

			convey.Convey("Then they are present", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(v.F, convey.ShouldResemble, model.Float(98.6))
				convey.So(v.I, convey.ShouldResemble, model.Int(7))
				convey.So(v.S, convey.ShouldResemble, model.String("Line Drive"))
				convey.So(v.B.True(), convey.ShouldBeTrue)
				convey.So(v.FS, convey.ShouldResemble, model.Float(12.5))
				convey.So(v.M.Valid, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When values are null or of the wrong shape", func() {
			err := json.Unmarshal([]byte(`{"f":null,"i":{"x":1},"s":[1],"b":"maybe","m":"abc"}`), &v)

			convey.Convey("Then decoding succeeds and they are absent", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(v.F.Valid, convey.ShouldBeFalse)
				convey.So(v.I.Valid, convey.ShouldBeFalse)
				convey.So(v.S.Valid, convey.ShouldBeFalse)
				convey.So(v.B.Valid, convey.ShouldBeFalse)
				convey.So(v.M.Valid, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When numbers and strings cross over", func() {
			err := json.Unmarshal([]byte(`{"i":"745123","s":42,"f":"7","b":"false"}`), &v)

			convey.Convey("Then they coerce", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(v.I, convey.ShouldResemble, model.Int(745123))
				convey.So(v.S, convey.ShouldResemble, model.String("42"))
				convey.So(v.F, convey.ShouldResemble, model.Float(7))
				convey.So(v.B, convey.ShouldResemble, model.Bool(false))
			})
		})

		convey.Convey("When an integer field holds an integral float", func() {
			err := json.Unmarshal([]byte(`{"i":3.0}`), &v)
			convey.So(err, convey.ShouldBeNil)
			convey.So(v.I, convey.ShouldResemble, model.Int(3))

			err = json.Unmarshal([]byte(`{"i":3.5}`), &v)
			convey.So(err, convey.ShouldBeNil)
			convey.So(v.I.Valid, convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given absent scalars", t, func() {
		convey.Convey("Then they render as empty cells and null JSON", func() {
			convey.So(model.NullFloat{}.String(), convey.ShouldEqual, "")
			convey.So(model.NullInt{}.String(), convey.ShouldEqual, "")
			convey.So(model.NullString{}.String(), convey.ShouldEqual, "")
			b, err := json.Marshal(model.NullFloat{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "null")
			convey.So(model.Float(101.25).String(), convey.ShouldEqual, "101.25")
		})
	})
}

func TestDecodeGameDocument(t *testing.T) {
	convey.Convey("Given play-by-play payloads", t, func() {
		convey.Convey("When keys are camelCase", func() {
			raw := []byte(`{
				"allPlays":[{"about":{"inning":3,"halfInning":"top"},
					"playEvents":[{"details":{"isInPlay":true},
						"hitData":{"launchSpeed":101.2,"coordinates":{"coordX":125,"coordY":99}}}]}],
				"playsByInning":[{"hits":{"home":[],"away":[{"team":{"id":111}}]}},
				                 {"hits":{"home":[{"team":{"id":147}}]}}]}`)

			doc, err := model.DecodeGameDocument(raw)

			convey.Convey("Then the tree is populated and the raw bytes kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(doc.AllPlays), convey.ShouldEqual, 1)
				play := doc.AllPlays[0]
				convey.So(play.About.Inning, convey.ShouldResemble, model.Int(3))
				convey.So(play.PlayEvents[0].HitData, convey.ShouldNotBeNil)
				convey.So(play.PlayEvents[0].HitData.Coordinates.CoordY, convey.ShouldResemble, model.Float(99))
				convey.So(doc.HomeTeamID(), convey.ShouldResemble, model.Int(147))
				convey.So(string(doc.Raw), convey.ShouldEqual, string(raw))
			})
		})

		convey.Convey("When keys are lower-cased", func() {
			doc, err := model.DecodeGameDocument([]byte(`{"allplays":[{"result":{"eventtype":"single"}}]}`))

			convey.Convey("Then they still decode", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(doc.AllPlays), convey.ShouldEqual, 1)
				convey.So(doc.AllPlays[0].Result.EventType, convey.ShouldResemble, model.String("single"))
				convey.So(doc.HomeTeamID().Valid, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a container has the wrong shape", func() {
			doc, err := model.DecodeGameDocument([]byte(`{"allPlays":[{"about":"oops","result":{"eventType":"out"}}],"playsByInning":7}`))

			convey.Convey("Then the rest of the document survives", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(doc.AllPlays), convey.ShouldEqual, 1)
				convey.So(doc.AllPlays[0].Result.EventType, convey.ShouldResemble, model.String("out"))
				convey.So(doc.PlaysByInning, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the payload is not JSON", func() {
			doc, err := model.DecodeGameDocument([]byte(`{"allPlays":[`))

			convey.Convey("Then it fails as malformed", func() {
				convey.So(doc, convey.ShouldBeNil)
				convey.So(errors.Is(err, model.ErrMalformedDocument), convey.ShouldBeTrue)
			})
		})
	})
}

func TestScheduledGameRef(t *testing.T) {
	convey.Convey("Given schedule rows", t, func() {
		convey.Convey("When the row is complete", func() {
			ref, err := model.ScheduledGame{GamePK: "745123", Date: "2024-04-01", HomeTeam: "NYY", AwayTeam: "BOS"}.Ref()

			convey.Convey("Then it converts to a reference", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ref.GamePK, convey.ShouldEqual, 745123)
				convey.So(ref.Season(), convey.ShouldEqual, 2024)
				convey.So(ref.HomeTeam, convey.ShouldEqual, "NYY")
			})
		})

		convey.Convey("When the date uses another accepted layout", func() {
			for _, d := range []string{"2023-07-04T23:05:00Z", "2023-07-04 19:05:00", "07/04/2023"} {
				ref, err := model.ScheduledGame{GamePK: "1", Date: d, HomeTeam: "A", AwayTeam: "B"}.Ref()
				convey.So(err, convey.ShouldBeNil)
				convey.So(ref.Season(), convey.ShouldEqual, 2023)
			}
		})

		convey.Convey("When the game id is a float-formatted integer", func() {
			ref, err := model.ScheduledGame{GamePK: "717465.0", Date: "2023-04-01", HomeTeam: "A", AwayTeam: "B"}.Ref()
			convey.So(err, convey.ShouldBeNil)
			convey.So(ref.GamePK, convey.ShouldEqual, 717465)
		})

		convey.Convey("When fields are invalid", func() {
			_, err := model.ScheduledGame{GamePK: "", Date: "2024-04-01", HomeTeam: "A", AwayTeam: "B"}.Ref()
			convey.So(errors.Is(err, model.ErrInvalidGamePK), convey.ShouldBeTrue)

			_, err = model.ScheduledGame{GamePK: "12.5", Date: "2024-04-01", HomeTeam: "A", AwayTeam: "B"}.Ref()
			convey.So(errors.Is(err, model.ErrInvalidGamePK), convey.ShouldBeTrue)

			_, err = model.ScheduledGame{GamePK: "1", Date: "April first", HomeTeam: "A", AwayTeam: "B"}.Ref()
			convey.So(errors.Is(err, model.ErrInvalidDate), convey.ShouldBeTrue)

			_, err = model.ScheduledGame{GamePK: "1", Date: "2024-04-01", HomeTeam: " ", AwayTeam: "B"}.Ref()
			convey.So(errors.Is(err, model.ErrMissingTeam), convey.ShouldBeTrue)
		})
	})
}

func TestHitEventValues(t *testing.T) {
	convey.Convey("Given a partially populated hit event", t, func() {
		e := model.HitEvent{
			HalfInning:   model.String("bottom"),
			Inning:       model.Int(7),
			LaunchSpeed:  model.Float(104.3),
			HitLocationX: 125,
			HitLocationY: 99,
			HitSector:    "CF",
			HitDistance:  100,
			SprayAngle:   180,
		}

		values := e.Values()

		convey.Convey("Then values line up with the fixed columns", func() {
			convey.So(len(values), convey.ShouldEqual, len(model.HitColumns))
			col := func(name string) string {
				for i, c := range model.HitColumns {
					if c == name {
						return values[i]
					}
				}
				return "missing column"
			}
			convey.So(col("half_inning"), convey.ShouldEqual, "bottom")
			convey.So(col("inning"), convey.ShouldEqual, "7")
			convey.So(col("launch_speed"), convey.ShouldEqual, "104.3")
			convey.So(col("launch_angle"), convey.ShouldEqual, "")
			convey.So(col("hit_sector"), convey.ShouldEqual, "CF")
			convey.So(col("spray_angle"), convey.ShouldEqual, "180")
			convey.So(model.HitColumns[0], convey.ShouldEqual, "start_time")
			convey.So(model.HitColumns[len(model.HitColumns)-1], convey.ShouldEqual, "spray_angle")
		})
	})
}
