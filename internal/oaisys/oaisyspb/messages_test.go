package oaisyspb

import (
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestStepSampleRequest_RoundTrip(t *testing.T) {
	in := &StepSampleRequest{SensorModuleRequest: &SensorModuleRequest{
		Pose: &PoseType{X: 1, Y: -2.5, Z: 30, QW: 1},
	}}
	b, err := Codec{}.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() returned an error: %v", err)
	}
	out := new(StepSampleRequest)
	if err := (Codec{}).Unmarshal(b, out); err != nil {
		t.Fatalf("Unmarshal() returned an error: %v", err)
	}
	if got := out.GetPose(); got == nil || *got != *in.SensorModuleRequest.Pose {
		t.Errorf("Expected pose %+v, got %+v", in.SensorModuleRequest.Pose, got)
	}
}

// A reply as a stock protobuf encoder writes it, with a field this client
// does not know about in between.
func TestRenderFinishedReply_DecodesWireBytes(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 2)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "/out/rgb.png")
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "unknown")
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "/out/depth.exr")

	var reply RenderFinishedReply
	if err := reply.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal() returned an error: %v", err)
	}
	if reply.State != 2 {
		t.Errorf("Expected state 2, got %d", reply.State)
	}
	want := []string{"/out/rgb.png", "/out/depth.exr"}
	if !reflect.DeepEqual(reply.FilePathList, want) {
		t.Errorf("Expected %v, got %v", want, reply.FilePathList)
	}
}

func TestStepSampleReply_ZeroValuesOmitted(t *testing.T) {
	b, _ := (&StepSampleReply{}).Marshal()
	if len(b) != 0 {
		t.Errorf("Expected an empty encoding for a zero reply, got %x", b)
	}

	b, _ = (&StepSampleReply{SuccessRet: true, BatchID: 3, SampleID: 7}).Marshal()
	var reply StepSampleReply
	if err := reply.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal() returned an error: %v", err)
	}
	if !reply.SuccessRet || reply.BatchID != 3 || reply.SampleID != 7 {
		t.Errorf("Unexpected reply %+v", reply)
	}
}

func TestUnmarshal_Truncated(t *testing.T) {
	b, _ := (&BatchCreationFinishedReply{State: 2}).Marshal()
	var reply BatchCreationFinishedReply
	if err := reply.Unmarshal(b[:1]); err == nil {
		t.Error("Expected an error for a truncated message")
	}
}

func TestCodec_RejectsForeignTypes(t *testing.T) {
	if _, err := (Codec{}).Marshal("not a message"); err == nil {
		t.Error("Expected Marshal to reject a non-Oaisys value")
	}
	if err := (Codec{}).Unmarshal(nil, new(int)); err == nil {
		t.Error("Expected Unmarshal to reject a non-Oaisys value")
	}
}
