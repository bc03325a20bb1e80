package grpc

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const analyticsProtoFile = "fintrack/v1/analytics.proto"

// analyticsFileDescriptor describes AnalyticsService for server reflection.
// It must stay in step with analyticsServiceDesc.
func analyticsFileDescriptor() *descriptorpb.FileDescriptorProto {
	empty := "." + string((&emptypb.Empty{}).ProtoReflect().Descriptor().FullName())
	object := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())

	method := func(name, input string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(input),
			OutputType: proto.String(object),
		}
	}

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(analyticsProtoFile),
		Package: proto.String("fintrack.v1"),
		Dependency: []string{
			emptypb.File_google_protobuf_empty_proto.Path(),
			structpb.File_google_protobuf_struct_proto.Path(),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("AnalyticsService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("GetDashboardStats", empty),
				method("GetTransactionStats", object),
				method("GetInvestmentStats", object),
			},
		}},
		Syntax: proto.String("proto3"),
	}
}

func init() {
	fd, err := protodesc.NewFile(analyticsFileDescriptor(), protoregistry.GlobalFiles)
	if err != nil {
		panic("analytics descriptor: " + err.Error())
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic("analytics descriptor: " + err.Error())
	}
}
