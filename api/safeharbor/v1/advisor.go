// Package advisorv1 defines the safeharbor.v1.Advisor gRPC service.
// Messages travel as google.protobuf.Struct; the request and response
// shapes below are their JSON field layout.
package advisorv1

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ppiankov/safeharbor/internal/model"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "safeharbor.v1.Advisor"

// Full method names.
const (
	ClassifyMethod   = "/" + ServiceName + "/Classify"
	AskMethod        = "/" + ServiceName + "/Ask"
	CheckFieldMethod = "/" + ServiceName + "/CheckField"
	SuggestMethod    = "/" + ServiceName + "/Suggest"
)

type ClassifyRequest struct {
	URL string `json:"url"`
}

type AskRequest struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

type CheckFieldRequest struct {
	URL   string                `json:"url"`
	Field model.FieldDescriptor `json:"field"`
}

type SuggestRequest struct {
	Query string `json:"query"`
}

// AdvisorServer is the server API for the Advisor service.
type AdvisorServer interface {
	Classify(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ask(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CheckField(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Suggest(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(AdvisorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AdvisorServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(AdvisorServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc describes the Advisor service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdvisorServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc("Classify", AdvisorServer.Classify),
		methodDesc("Ask", AdvisorServer.Ask),
		methodDesc("CheckField", AdvisorServer.CheckField),
		methodDesc("Suggest", AdvisorServer.Suggest),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "safeharbor/v1/advisor.proto",
}

// RegisterAdvisorServer registers srv on s.
func RegisterAdvisorServer(s grpc.ServiceRegistrar, srv AdvisorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Encode converts a JSON-tagged value into a Struct message.
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return out, nil
}

// Decode fills out (a pointer to a JSON-tagged struct) from a Struct
// message. Unknown keys are ignored.
func Decode(s *structpb.Struct, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if err := dec.Decode(s.AsMap()); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}
