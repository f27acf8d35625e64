package layout

import (
	"math"
	"testing"
)

func sunflowerParams() FlowerParams {
	return FlowerParams{X: 50, StemHeight: 280, HeadSize: 110, PetalCount: 22, InnerCount: 14, Z: 5}
}

func TestLayoutFlowerSunflowerOuterPetals(t *testing.T) {
	rng := NewRand(7)
	d := LayoutFlower(KindSunflower, sunflowerParams(), 0, 1, rng)
	if d.Flower == nil {
		t.Fatal("Flower payload should be set")
	}

	var outer []Petal
	for _, p := range d.Flower.Petals {
		if p.Ring == 0 {
			outer = append(outer, p)
		}
	}
	if len(outer) != 22 {
		t.Fatalf("outer petals = %d, want 22", len(outer))
	}
	step := 360.0 / 22
	for i, p := range outer {
		base := step * float64(i)
		if p.Angle < base-PetalJitter || p.Angle > base+PetalJitter {
			t.Errorf("petal %d angle = %f, want within [%f, %f]", i, p.Angle, base-PetalJitter, base+PetalJitter)
		}
	}
}

func TestLayoutFlowerSunflowerInnerPetalsUnjittered(t *testing.T) {
	d := LayoutFlower(KindSunflower, sunflowerParams(), 1, 1, NewRand(3))
	step := 360.0 / 14
	i := 0
	for _, p := range d.Flower.Petals {
		if p.Ring != 1 {
			continue
		}
		want := step*float64(i) + 180.0/22
		if math.Abs(p.Angle-want) > 1e-9 {
			t.Errorf("inner petal %d angle = %f, want %f", i, p.Angle, want)
		}
		i++
	}
	if i != 14 {
		t.Errorf("inner petals = %d, want 14", i)
	}
}

func TestLayoutFlowerScalesStemAndHead(t *testing.T) {
	d := LayoutFlower(KindSunflower, sunflowerParams(), 0, 1.1, NewRand(1))
	if math.Abs(d.Flower.StemHeight-308) > 1e-9 {
		t.Errorf("StemHeight = %f, want 308", d.Flower.StemHeight)
	}
	if math.Abs(d.Flower.HeadSize-121) > 1e-9 {
		t.Errorf("HeadSize = %f, want 121", d.Flower.HeadSize)
	}
	if d.Flower.StemWidth < 6 {
		t.Errorf("StemWidth = %f, want >= 6", d.Flower.StemWidth)
	}
}

func TestLayoutFlowerSunflowerLeafPairs(t *testing.T) {
	first := LayoutFlower(KindSunflower, sunflowerParams(), 0, 1, NewRand(1))
	other := LayoutFlower(KindSunflower, sunflowerParams(), 2, 1, NewRand(1))
	if len(first.Flower.Leaves) != 6 {
		t.Errorf("index 0 leaves = %d, want 6", len(first.Flower.Leaves))
	}
	if len(other.Flower.Leaves) != 4 {
		t.Errorf("index 2 leaves = %d, want 4", len(other.Flower.Leaves))
	}
}

func TestLayoutFlowerRoseLayers(t *testing.T) {
	p := FlowerParams{X: 25, StemHeight: 90, HeadSize: 40, Z: 2, Color: "red"}
	d := LayoutFlower(KindRose, p, 0, 1, nil)

	perLayer := map[int][]Petal{}
	for _, pt := range d.Flower.Petals {
		perLayer[pt.Ring] = append(perLayer[pt.Ring], pt)
	}
	for layer, count := range RosePetalsPerLayer {
		got := perLayer[layer]
		if len(got) != count {
			t.Fatalf("layer %d petals = %d, want %d", layer, len(got), count)
		}
		shrink := 1 - float64(layer)*0.2
		for i, pt := range got {
			wantAngle := 360/float64(count)*float64(i) + float64(layer)*20
			if math.Abs(pt.Angle-wantAngle) > 1e-9 {
				t.Errorf("layer %d petal %d angle = %f, want %f", layer, i, pt.Angle, wantAngle)
			}
			if math.Abs(pt.Width-40*0.3*shrink) > 1e-9 {
				t.Errorf("layer %d petal width = %f, want %f", layer, pt.Width, 40*0.3*shrink)
			}
			if pt.Z != layer+1 {
				t.Errorf("layer %d petal Z = %d, want %d", layer, pt.Z, layer+1)
			}
		}
	}
	if len(d.Flower.Thorns) != 3 {
		t.Errorf("thorns = %d, want 3", len(d.Flower.Thorns))
	}
	if d.Flower.Thorns[0].Side != SideLeft || d.Flower.Thorns[1].Side != SideRight {
		t.Error("thorns should alternate starting on the left")
	}
	if len(d.Flower.Leaves) != 2 {
		t.Errorf("leaves = %d, want 2", len(d.Flower.Leaves))
	}
}

func TestLayoutFlowerTulipFan(t *testing.T) {
	p := FlowerParams{X: 8, StemHeight: 120, HeadSize: 35, Rotation: -8, Z: 2, Color: "red"}
	d := LayoutFlower(KindTulip, p, 0, 1, nil)
	if len(d.Flower.Petals) != 5 {
		t.Fatalf("petals = %d, want 5", len(d.Flower.Petals))
	}
	wantAngles := []float64{-30, -15, 0, 15, 30}
	wantZ := []int{3, 4, 5, 4, 3}
	for i, pt := range d.Flower.Petals {
		if pt.Angle != wantAngles[i] {
			t.Errorf("petal %d angle = %f, want %f", i, pt.Angle, wantAngles[i])
		}
		if pt.Z != wantZ[i] {
			t.Errorf("petal %d Z = %d, want %d", i, pt.Z, wantZ[i])
		}
	}
	if math.Abs(d.Flower.HeadHeight-35*1.3) > 1e-9 {
		t.Errorf("HeadHeight = %f, want %f", d.Flower.HeadHeight, 35*1.3)
	}
	if d.Rotation != -8 || d.Z != 2 {
		t.Errorf("Rotation/Z = %f/%d, want -8/2", d.Rotation, d.Z)
	}
}

func TestLayoutFlowerGlowEvenSpacing(t *testing.T) {
	p := FlowerParams{X: 50, StemHeight: 200, HeadSize: 70, PetalCount: 6, Z: 15}
	d := LayoutFlower(KindGlowFlower, p, 0, 1, nil)
	if len(d.Flower.Petals) != 6 {
		t.Fatalf("petals = %d, want 6", len(d.Flower.Petals))
	}
	for i, pt := range d.Flower.Petals {
		if want := 60 * float64(i); math.Abs(pt.Angle-want) > 1e-9 {
			t.Errorf("petal %d angle = %f, want %f", i, pt.Angle, want)
		}
	}
	if len(d.Flower.Leaves) != 5 {
		t.Errorf("leaves = %d, want 5", len(d.Flower.Leaves))
	}
}

func TestLayoutFlowerDefaultsPetalCounts(t *testing.T) {
	d := LayoutFlower(KindGlowFlower, FlowerParams{StemHeight: 100, HeadSize: 50}, 0, 1, nil)
	if len(d.Flower.Petals) != defaultGlowPetals {
		t.Errorf("petals = %d, want %d", len(d.Flower.Petals), defaultGlowPetals)
	}
}

func TestLayoutFlowerDegenerateSizes(t *testing.T) {
	d := LayoutFlower(KindSunflower, FlowerParams{StemHeight: -10, HeadSize: -5}, 0, 1, nil)
	if d.Flower.StemHeight != 0 || d.Flower.HeadSize != 0 {
		t.Errorf("negative sizes should clamp to zero, got stem=%f head=%f", d.Flower.StemHeight, d.Flower.HeadSize)
	}
	for _, p := range d.Flower.Petals {
		if p.Width < 0 || p.Length < 0 {
			t.Fatalf("petal has negative size: %+v", p)
		}
	}
}

func TestLayoutFlowerNonFlowerKind(t *testing.T) {
	d := LayoutFlower(KindFirefly, FlowerParams{X: 10}, 0, 1, nil)
	if d.Flower != nil {
		t.Error("non-flower kind should not carry a Flower payload")
	}
}
